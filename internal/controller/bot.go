package controller

import (
	"context"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WeekProjector строит недельную сетку поля
type WeekProjector interface {
	BuildWeek(ctx context.Context, fieldID int64, offset int) (*service.Grid, error)
}

// TemplateComposer загружает шаблон и синхронизирует слоты поля
type TemplateComposer interface {
	LoadExistingTemplate(ctx context.Context, fieldID int64) (model.WeeklyTemplate, bool, error)
	LoadTemplate(ctx context.Context, fieldID int64, policy service.EmptyDayPolicy) (model.WeeklyTemplate, bool, error)
	Sync(ctx context.Context, fieldID int64, tpl model.WeeklyTemplate, opts service.SyncOptions) (*model.SyncRun, error)
}

// Options параметры админ-бота
type Options struct {
	// AdminChatID единственный чат, которому бот отвечает
	AdminChatID int64
	// DefaultFieldID поле для команд без аргумента, 0 - аргумент обязателен
	DefaultFieldID int64
}

type BotController struct {
	bot       *bot.Bot
	projector WeekProjector
	composer  TemplateComposer
	opts      Options
	logger    *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	projector WeekProjector,
	composer TemplateComposer,
	opts Options,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:       botInstance,
		projector: projector,
		composer:  composer,
		opts:      opts,
		logger:    logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypePrefix, c.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/template", bot.MatchTypePrefix, c.HandleTemplate)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sync", bot.MatchTypePrefix, c.HandleSync)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "week", Description: "📅 Сетка недели: /week [поле] [сдвиг]"},
		{Command: "template", Description: "🗓 Недельный шаблон поля"},
		{Command: "sync", Description: "🔄 Продлить слоты по шаблону"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting admin bot...", zap.Int64("admin_chat_id", c.opts.AdminChatID))
	c.bot.Start(ctx)
	return nil
}
