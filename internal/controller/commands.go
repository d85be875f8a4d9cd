package controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/club_admin/internal/controller/formatting"
	"github.com/Freeeeeet/club_admin/internal/controller/keyboard"
	"github.com/Freeeeeet/club_admin/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/week [поле] [сдвиг] - Сетка недели, сдвиг в неделях от текущей\n" +
	"/template [поле] - Недельный шаблон, восстановленный по слотам\n" +
	"/sync [поле] - Досоздать слоты до конца окна по текущему шаблону\n" +
	"/help - Показать эту справку"

// HandleHelp обрабатывает /start и /help
func (c *BotController) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !c.requireAdmin(ctx, b, update) {
		return
	}
	c.sendText(ctx, b, update.Message.Chat.ID, helpText, "")
}

// HandleWeek обрабатывает /week [поле] [сдвиг]
func (c *BotController) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !c.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	fieldID, err := c.fieldArg(args)
	if err != nil {
		c.sendError(ctx, b, chatID, err)
		return
	}
	offset := 0
	if len(args) > 1 {
		if offset, err = strconv.Atoi(args[1]); err != nil {
			c.sendError(ctx, b, chatID, fmt.Errorf("%w: week offset %q", ErrInvalidArgs, args[1]))
			return
		}
	}

	grid, err := c.projector.BuildWeek(ctx, fieldID, offset)
	if err != nil {
		c.logger.Error("Failed to build week",
			zap.Int64("field_id", fieldID),
			zap.Int("offset", offset),
			zap.Error(err))
		c.sendError(ctx, b, chatID, err)
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        formatting.FormatWeekCompact(grid),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard.WeekNavigation(fieldID, offset),
	})
	if err != nil {
		c.logger.Error("Failed to send week", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// HandleTemplate обрабатывает /template [поле]
func (c *BotController) HandleTemplate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !c.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	fieldID, err := c.fieldArg(commandArgs(update.Message.Text))
	if err != nil {
		c.sendError(ctx, b, chatID, err)
		return
	}

	tpl, existing, err := c.composer.LoadExistingTemplate(ctx, fieldID)
	if err != nil {
		c.sendError(ctx, b, chatID, err)
		return
	}

	text := fmt.Sprintf("🗓 Шаблон поля #%d\n\n%s", fieldID, formatting.FormatTemplate(tpl))
	if !existing {
		text = fmt.Sprintf("🗓 У поля #%d ещё нет расписания", fieldID)
	}
	c.sendText(ctx, b, chatID, text, "")
}

// HandleSync обрабатывает /sync [поле]: продлевает расписание за его последнюю
// дату по текущему шаблону, не трогая уже созданные дни
func (c *BotController) HandleSync(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !c.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	fieldID, err := c.fieldArg(commandArgs(update.Message.Text))
	if err != nil {
		c.sendError(ctx, b, chatID, err)
		return
	}

	tpl, existing, err := c.composer.LoadTemplate(ctx, fieldID, service.EmptyDayClosed)
	if err != nil {
		c.sendError(ctx, b, chatID, err)
		return
	}
	if !existing {
		c.sendText(ctx, b, chatID, fmt.Sprintf("🗓 У поля #%d ещё нет расписания. Создайте его через CLI.", fieldID), "")
		return
	}

	c.sendText(ctx, b, chatID, "⏳ Синхронизация запущена…", "")

	run, err := c.composer.Sync(ctx, fieldID, tpl, service.SyncOptions{ExtendOnly: true})
	if err != nil {
		c.sendError(ctx, b, chatID, err)
		return
	}

	c.sendText(ctx, b, chatID, formatting.FormatRun(run), "")
}

// commandArgs аргументы команды без самой команды
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

func (c *BotController) fieldArg(args []string) (int64, error) {
	if len(args) == 0 {
		if c.opts.DefaultFieldID == 0 {
			return 0, fmt.Errorf("%w: field id is required", ErrInvalidArgs)
		}
		return c.opts.DefaultFieldID, nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: field id %q", ErrInvalidArgs, args[0])
	}
	return id, nil
}
