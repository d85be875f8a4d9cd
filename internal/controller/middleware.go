package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireAdmin пропускает только сообщения из чата администратора
func (c *BotController) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil {
		return false
	}

	chatID := update.Message.Chat.ID
	if chatID != c.opts.AdminChatID {
		c.logger.Warn("Command from unknown chat rejected",
			zap.Int64("chat_id", chatID),
			zap.String("text", update.Message.Text))
		c.sendText(ctx, b, chatID, "⛔ Нет доступа", "")
		return false
	}

	return true
}

// sendError отправляет пользовательское сообщение для ошибки
func (c *BotController) sendError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	c.sendText(ctx, b, chatID, ErrorMessage(err), "")
}

// sendText отправляет сообщение и логирует если не удалось
func (c *BotController) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string, parseMode models.ParseMode) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		c.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
