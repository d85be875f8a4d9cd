package main

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/club_admin/internal/app"
	"github.com/Freeeeeet/club_admin/internal/controller"
	"github.com/Freeeeeet/club_admin/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram admin bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.TelegramEnabled() || c.cfg.TelegramAdminChatID == 0 {
				return errors.New("TELEGRAM_TOKEN and TELEGRAM_ADMIN_CHAT_ID are required")
			}
			d, err := c.services(cmd)
			if err != nil {
				return err
			}

			var defaultField int64
			if len(c.cfg.SyncFields) > 0 {
				defaultField = c.cfg.SyncFields[0]
			}

			ctrl := controller.NewBotController(d.bot, d.projector, d.composer, controller.Options{
				AdminChatID:    c.cfg.TelegramAdminChatID,
				DefaultFieldID: defaultField,
			}, c.logger)
			if err := ctrl.RegisterHandlers(cmd.Context()); err != nil {
				return fmt.Errorf("register bot handlers: %w", err)
			}

			return ctrl.Start(cmd.Context())
		},
	}
}

func (c *cli) newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Keep the slot horizon of SYNC_FIELDS topped up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(c.cfg.SyncFields) == 0 {
				return errors.New("SYNC_FIELDS is empty")
			}
			d, err := c.services(cmd)
			if err != nil {
				return err
			}

			scheduler := app.NewScheduler(d.composer, c.cfg.SyncFields, c.cfg.SyncInterval, c.logger)
			scheduler.Start(cmd.Context())

			<-cmd.Context().Done()
			scheduler.Stop()
			c.logger.Info("Daemon stopped")
			return nil
		},
	}
}

func (c *cli) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the sync journal migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.JournalEnabled() {
				return service.ErrJournalDisabled
			}
			// миграции применяются при подключении к журналу
			d, err := c.services(cmd)
			if err != nil {
				return err
			}

			migrator, err := app.NewMigrator(d.pool, c.logger)
			if err != nil {
				return err
			}
			defer migrator.Close()

			version, err := migrator.Version(cmd.Context())
			if err != nil {
				return err
			}
			c.logger.Info("Journal schema is up to date", zap.Int64("version", version))
			fmt.Fprintf(cmd.OutOrStdout(), "Версия схемы журнала: %d\n", version)
			return nil
		},
	}
}
