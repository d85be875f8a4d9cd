package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Freeeeeet/club_admin/internal/repository/base"
	"github.com/Freeeeeet/club_admin/internal/service"
	"github.com/Freeeeeet/club_admin/internal/session"
)

// ErrInvalidArgs неверные аргументы команды
var ErrInvalidArgs = errors.New("invalid command arguments")

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	if msg, ok := KnownErrorMessage(err); ok {
		return msg
	}
	return "❌ Произошла ошибка"
}

// KnownErrorMessage сообщение для ошибок, которые понятны оператору без подробностей
func KnownErrorMessage(err error) (string, bool) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		lines := make([]string, 0, len(verr.Problems))
		for _, p := range verr.Problems {
			lines = append(lines, "• "+p.Day.Label()+": "+p.Problem)
		}
		return "❌ Шаблон заполнен неверно:\n" + strings.Join(lines, "\n"), true
	}

	var apiErr *base.APIError
	if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
		return "❌ API ключ отклонён сервером. Выполните clubadmin login", true
	}

	switch {
	case errors.Is(err, ErrInvalidArgs):
		return "❌ Неверные аргументы команды. Справка: /help", true
	case errors.Is(err, session.ErrNoSession):
		return "❌ Нет активной сессии. Выполните clubadmin login", true
	case errors.Is(err, service.ErrFieldNotFound), errors.Is(err, base.ErrNotFound):
		return "❌ Поле не найдено", true
	case errors.Is(err, service.ErrRunNotFound):
		return "❌ Запуск синхронизации не найден", true
	case errors.Is(err, service.ErrJournalDisabled):
		return "❌ Журнал синхронизаций не настроен", true
	case errors.Is(err, context.DeadlineExceeded):
		return "❌ Сервер не ответил вовремя. Попробуйте позже", true
	default:
		return "", false
	}
}
