package controller

import (
	"context"
	"strings"

	"github.com/Freeeeeet/club_admin/internal/controller/formatting"
	"github.com/Freeeeeet/club_admin/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleCallbackQuery обработчик нажатий на inline кнопки
func (c *BotController) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	msg := callback.Message.Message
	if msg == nil || msg.Chat.ID != c.opts.AdminChatID {
		c.logger.Warn("Callback from unknown chat rejected",
			zap.Int64("user_id", callback.From.ID),
			zap.String("data", callback.Data))
		answerCallback(ctx, b, callback.ID, "⛔ Нет доступа", true)
		return
	}

	switch {
	case strings.HasPrefix(callback.Data, keyboard.WeekPrefix):
		c.handleWeekCallback(ctx, b, callback, msg)
	default:
		c.logger.Warn("Unknown callback", zap.String("data", callback.Data))
		answerCallback(ctx, b, callback.ID, "❌ Неизвестная команда", true)
	}
}

func (c *BotController) handleWeekCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, msg *models.Message) {
	fieldID, offset, err := keyboard.ParseWeekData(callback.Data)
	if err != nil {
		c.logger.Error("Invalid callback format", zap.String("data", callback.Data), zap.Error(err))
		answerCallback(ctx, b, callback.ID, "❌ Неверный формат", true)
		return
	}

	grid, err := c.projector.BuildWeek(ctx, fieldID, offset)
	if err != nil {
		c.logger.Error("Failed to build week",
			zap.Int64("field_id", fieldID),
			zap.Int("offset", offset),
			zap.Error(err))
		answerCallback(ctx, b, callback.ID, ErrorMessage(err), true)
		return
	}

	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        formatting.FormatWeekCompact(grid),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard.WeekNavigation(fieldID, offset),
	})
	// "message is not modified" не ошибка
	if err != nil && !isMessageNotModified(err) {
		c.logger.Error("Failed to edit week message", zap.Error(err))
	}
	answerCallback(ctx, b, callback.ID, "", false)
}

func answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
}

func isMessageNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
