package main

import (
	"fmt"
	"os"

	"github.com/Freeeeeet/club_admin/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) newLoginCmd() *cobra.Command {
	var (
		apiKey string
		clubID int64
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the API key and club id for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiKey == "" {
				apiKey = c.cfg.APIKey
			}
			if clubID == 0 {
				clubID = c.cfg.ClubID
			}

			sess, err := session.Open(c.cfg.SessionFile)
			if err != nil {
				return fmt.Errorf("open session: %w", err)
			}
			if err := sess.Login(session.Credentials{APIKey: apiKey, ClubID: clubID}); err != nil {
				return err
			}

			c.logger.Info("Logged in", zap.Int64("club_id", clubID), zap.String("session_file", c.cfg.SessionFile))
			fmt.Fprintf(cmd.OutOrStdout(), "Вход выполнен, клуб %d\n", clubID)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (defaults to API_KEY)")
	cmd.Flags().Int64Var(&clubID, "club-id", 0, "club id (defaults to CLUB_ID)")
	return cmd
}

func (c *cli) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.Open(c.cfg.SessionFile)
			if err != nil {
				return fmt.Errorf("open session: %w", err)
			}
			if !sess.Active() {
				fmt.Fprintln(cmd.OutOrStdout(), "Сессии нет")
				return nil
			}
			if err := sess.Logout(); err != nil {
				return err
			}
			if c.cfg.APIKey != "" {
				fmt.Fprintln(os.Stderr, "API_KEY всё ещё задан в окружении")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Сессия завершена")
			return nil
		},
	}
}
