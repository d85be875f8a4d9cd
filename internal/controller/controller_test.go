package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Freeeeeet/club_admin/internal/apitest"
	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/repository/base"
	"github.com/Freeeeeet/club_admin/internal/service"
	"github.com/Freeeeeet/club_admin/internal/session"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const adminChat = 777

type stubProjector struct {
	fieldID int64
	offset  int
	err     error
}

func (p *stubProjector) BuildWeek(ctx context.Context, fieldID int64, offset int) (*service.Grid, error) {
	p.fieldID, p.offset = fieldID, offset
	if p.err != nil {
		return nil, p.err
	}
	return &service.Grid{
		Field:     model.Field{ID: fieldID, Name: "Pista", SlotDuration: 60},
		WeekStart: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
	}, nil
}

type stubComposer struct {
	tpl      model.WeeklyTemplate
	existing bool
	synced   []int64
	policy   service.EmptyDayPolicy
	opts     service.SyncOptions
}

func (c *stubComposer) LoadExistingTemplate(ctx context.Context, fieldID int64) (model.WeeklyTemplate, bool, error) {
	return c.tpl, c.existing, nil
}

func (c *stubComposer) LoadTemplate(ctx context.Context, fieldID int64, policy service.EmptyDayPolicy) (model.WeeklyTemplate, bool, error) {
	c.policy = policy
	return c.tpl, c.existing, nil
}

func (c *stubComposer) Sync(ctx context.Context, fieldID int64, tpl model.WeeklyTemplate, opts service.SyncOptions) (*model.SyncRun, error) {
	c.synced = append(c.synced, fieldID)
	c.opts = opts
	return &model.SyncRun{ID: uuid.New(), FieldID: fieldID, Created: 4}, nil
}

func newController(t *testing.T, opts Options) (*BotController, *bot.Bot, *apitest.Telegram, *stubProjector, *stubComposer) {
	t.Helper()
	tg := apitest.NewTelegram()
	t.Cleanup(tg.Close)

	b, err := bot.New("test-token", bot.WithSkipGetMe(), bot.WithServerURL(tg.URL))
	require.NoError(t, err)

	tpl := model.NewWeeklyTemplate()
	tpl.Set(model.Monday, model.MustClock("08:00"), model.MustClock("10:00"))
	projector := &stubProjector{}
	composer := &stubComposer{tpl: tpl, existing: true}

	return NewBotController(b, projector, composer, opts, zaptest.NewLogger(t)), b, tg, projector, composer
}

func message(chatID int64, text string) *models.Update {
	return &models.Update{Message: &models.Message{Chat: models.Chat{ID: chatID}, Text: text}}
}

func TestHandleWeek(t *testing.T) {
	c, b, tg, projector, _ := newController(t, Options{AdminChatID: adminChat})

	c.HandleWeek(context.Background(), b, message(adminChat, "/week 3 -1"))

	assert.Equal(t, int64(3), projector.fieldID)
	assert.Equal(t, -1, projector.offset)
	msgs := tg.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "HTML", msgs[0].ParseMode)
	assert.Contains(t, msgs[0].Text, "Pista")
	assert.Contains(t, msgs[0].ReplyMarkup, "week:3:-2")
	assert.Contains(t, msgs[0].ReplyMarkup, "week:3:0")
}

func callback(chatID int64, data string) *models.Update {
	return &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "cb-1",
		From: models.User{ID: 42},
		Data: data,
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{ID: 10, Chat: models.Chat{ID: chatID}},
		},
	}}
}

func TestHandleWeekCallback(t *testing.T) {
	c, b, tg, projector, _ := newController(t, Options{AdminChatID: adminChat})

	c.HandleCallbackQuery(context.Background(), b, callback(adminChat, "week:4:2"))

	assert.Equal(t, int64(4), projector.fieldID)
	assert.Equal(t, 2, projector.offset)
	msgs := tg.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "editMessageText", msgs[0].Method)
	assert.Contains(t, msgs[0].ReplyMarkup, "week:4:3")
	assert.Contains(t, tg.Methods(), "answerCallbackQuery")
}

func TestHandleCallbackRejected(t *testing.T) {
	c, b, tg, projector, _ := newController(t, Options{AdminChatID: adminChat})
	ctx := context.Background()

	c.HandleCallbackQuery(ctx, b, callback(123, "week:4:2"))
	c.HandleCallbackQuery(ctx, b, callback(adminChat, "week:bad"))
	c.HandleCallbackQuery(ctx, b, callback(adminChat, "other:1"))

	assert.Zero(t, projector.fieldID)
	assert.Empty(t, tg.Messages())
	assert.Equal(t, []string{"answerCallbackQuery", "answerCallbackQuery", "answerCallbackQuery"}, tg.Methods())
}

func TestHandleWeekDefaultsAndErrors(t *testing.T) {
	c, b, tg, projector, _ := newController(t, Options{AdminChatID: adminChat, DefaultFieldID: 5})
	ctx := context.Background()

	c.HandleWeek(ctx, b, message(adminChat, "/week"))
	assert.Equal(t, int64(5), projector.fieldID)
	assert.Equal(t, 0, projector.offset)

	c.HandleWeek(ctx, b, message(adminChat, "/week abc"))
	c.HandleWeek(ctx, b, message(adminChat, "/week 1 next"))

	projector.err = fmt.Errorf("get field: %w", service.ErrFieldNotFound)
	c.HandleWeek(ctx, b, message(adminChat, "/week 9"))

	msgs := tg.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, ErrorMessage(ErrInvalidArgs), msgs[1].Text)
	assert.Equal(t, ErrorMessage(ErrInvalidArgs), msgs[2].Text)
	assert.Equal(t, "❌ Поле не найдено", msgs[3].Text)
}

func TestRequireAdmin(t *testing.T) {
	c, b, tg, projector, composer := newController(t, Options{AdminChatID: adminChat, DefaultFieldID: 1})
	ctx := context.Background()

	c.HandleWeek(ctx, b, message(100, "/week"))
	c.HandleSync(ctx, b, message(100, "/sync"))
	c.HandleHelp(ctx, b, &models.Update{})

	assert.Zero(t, projector.fieldID)
	assert.Empty(t, composer.synced)
	msgs := tg.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "⛔ Нет доступа", msgs[0].Text)
}

func TestHandleTemplateAndSync(t *testing.T) {
	c, b, tg, _, composer := newController(t, Options{AdminChatID: adminChat})
	ctx := context.Background()

	c.HandleTemplate(ctx, b, message(adminChat, "/template 2"))
	c.HandleSync(ctx, b, message(adminChat, "/sync 2"))

	assert.Equal(t, []int64{2}, composer.synced)
	assert.Equal(t, service.EmptyDayClosed, composer.policy)
	assert.True(t, composer.opts.ExtendOnly)

	msgs := tg.Messages()
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0].Text, "Понедельник: 08:00 - 10:00")
	assert.Contains(t, msgs[2].Text, "Создано: 4")

	composer.existing = false
	c.HandleSync(ctx, b, message(adminChat, "/sync 2"))
	assert.Equal(t, []int64{2}, composer.synced)
	assert.Contains(t, tg.Messages()[3].Text, "ещё нет расписания")
}

func TestHandleHelp(t *testing.T) {
	c, b, tg, _, _ := newController(t, Options{AdminChatID: adminChat})

	c.HandleHelp(context.Background(), b, message(adminChat, "/help"))
	msgs := tg.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "/week")
}

func TestRegisterHandlers(t *testing.T) {
	c, _, tg, _, _ := newController(t, Options{AdminChatID: adminChat})

	require.NoError(t, c.RegisterHandlers(context.Background()))
	assert.Contains(t, tg.Methods(), "setMyCommands")
}

func TestErrorMessage(t *testing.T) {
	tpl := model.NewWeeklyTemplate()
	for _, d := range []model.Weekday{model.Monday, model.Thursday, model.Friday, model.Saturday, model.Sunday} {
		tpl.Close(d)
	}
	tpl.Set(model.Wednesday, model.MustClock("10:00"), model.MustClock("09:00"))
	verr := service.Validate(tpl)
	require.Error(t, verr)

	tests := []struct {
		err  error
		want string
	}{
		{err: fmt.Errorf("sync: %w", verr), want: "❌ Шаблон заполнен неверно:\n• Вторник: не указано время начала или конца\n• Среда: начало должно быть раньше конца"},
		{err: &base.APIError{StatusCode: http.StatusUnauthorized}, want: "❌ API ключ отклонён сервером. Выполните clubadmin login"},
		{err: &base.APIError{StatusCode: http.StatusNotFound}, want: "❌ Поле не найдено"},
		{err: session.ErrNoSession, want: "❌ Нет активной сессии. Выполните clubadmin login"},
		{err: service.ErrRunNotFound, want: "❌ Запуск синхронизации не найден"},
		{err: service.ErrJournalDisabled, want: "❌ Журнал синхронизаций не настроен"},
		{err: fmt.Errorf("list: %w", context.DeadlineExceeded), want: "❌ Сервер не ответил вовремя. Попробуйте позже"},
		{err: errors.New("boom"), want: "❌ Произошла ошибка"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorMessage(tt.err))
	}

	_, ok := KnownErrorMessage(errors.New("boom"))
	assert.False(t, ok)
}
