package main

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/club_admin/internal/app"
	"github.com/Freeeeeet/club_admin/internal/config"
	"github.com/Freeeeeet/club_admin/internal/controller"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli общее состояние команд: конфиг, логгер и лениво собранные зависимости
type cli struct {
	cfg    *config.Config
	logger *zap.Logger
	deps   *deps
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clubadmin",
		Short:         "Manage field schedules and availability of a sports club",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
			if err != nil {
				return err
			}
			c.cfg, c.logger = cfg, logger

			logger.Debug("Starting clubadmin",
				zap.String("environment", cfg.Environment),
				zap.String("command", cmd.CommandPath()))
			return nil
		},
	}

	root.AddCommand(
		c.newLoginCmd(),
		c.newLogoutCmd(),
		c.newTemplateCmd(),
		c.newSyncCmd(),
		c.newWeekCmd(),
		c.newSlotCmd(),
		c.newReservationCmd(),
		c.newBotCmd(),
		c.newDaemonCmd(),
		c.newMigrateCmd(),
	)

	return root
}

// services собирает зависимости при первом обращении
func (c *cli) services(cmd *cobra.Command) (*deps, error) {
	if c.deps != nil {
		return c.deps, nil
	}
	d, err := newDeps(cmd.Context(), c.cfg, c.logger)
	if err != nil {
		return nil, err
	}
	c.deps = d
	return d, nil
}

// close освобождает зависимости и сбрасывает логгер. Вызывается и после
// неудачной команды: PersistentPostRun cobra в этом случае не запускает.
func (c *cli) close() {
	if c.deps != nil {
		c.deps.Close()
		c.deps = nil
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func execute(ctx context.Context, c *cli, root *cobra.Command) error {
	defer c.close()
	return root.ExecuteContext(ctx)
}

// errorText текст ошибки для оператора. Незнакомые ошибки выводятся с подробностями
func errorText(err error) string {
	if msg, ok := controller.KnownErrorMessage(err); ok {
		return msg
	}
	return "❌ Ошибка: " + err.Error()
}
