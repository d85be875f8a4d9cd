// Package notify отправляет отчёты о синхронизации администратору в Telegram.
package notify

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/club_admin/internal/controller/formatting"
	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
	// OnlyFailures не отправлять отчёт об успешной синхронизации
	OnlyFailures bool
	logger       *zap.Logger
}

func NewTelegramNotifier(b *bot.Bot, chatID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:          b,
		chatID:       chatID,
		OnlyFailures: true,
		logger:       logger,
	}
}

// NotifySync отправляет отчёт о синхронизации в чат администратора
func (n *TelegramNotifier) NotifySync(ctx context.Context, run *model.SyncRun) error {
	if run.OK() && n.OnlyFailures {
		return nil
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   formatting.FormatRun(run),
	})
	if err != nil {
		return fmt.Errorf("send sync report: %w", err)
	}

	n.logger.Debug("Sync report sent",
		zap.String("run_id", run.ID.String()),
		zap.Int64("chat_id", n.chatID))
	return nil
}
