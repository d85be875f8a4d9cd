package main

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/club_admin/internal/controller/formatting"
	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/service"
	"github.com/spf13/cobra"
)

func (c *cli) newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect the weekly template of a field",
	}
	cmd.AddCommand(c.newTemplateShowCmd(), c.newTemplateCopyCmd())
	return cmd
}

func (c *cli) newTemplateShowCmd() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "show <field-id>",
		Short: "Show the weekly template rebuilt from the field's slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fieldID, err := parseFieldID(args[0])
			if err != nil {
				return err
			}
			d, err := c.services(cmd)
			if err != nil {
				return err
			}

			tpl, existing, err := c.loadTemplate(cmd, d, fieldID, policy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !existing {
				fmt.Fprintf(out, "У поля %d ещё нет расписания\n", fieldID)
			}
			fmt.Fprint(out, formatting.FormatTemplate(tpl))
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "empty-days", "", "treat days without slots as open or closed (defaults to EMPTY_DAY_POLICY)")
	return cmd
}

func (c *cli) newTemplateCopyCmd() *cobra.Command {
	var (
		from string
		to   string
		sync bool
	)

	cmd := &cobra.Command{
		Use:   "copy <field-id>",
		Short: "Copy the hours of one day to other days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fieldID, err := parseFieldID(args[0])
			if err != nil {
				return err
			}
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to are required")
			}

			d, err := c.services(cmd)
			if err != nil {
				return err
			}
			tpl, _, err := c.loadTemplate(cmd, d, fieldID, "")
			if err != nil {
				return err
			}
			if err := applyCopies(&tpl, []string{from + ":" + to}); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatting.FormatTemplate(tpl))
			if !sync {
				return nil
			}
			return c.runSync(cmd, d, fieldID, tpl, service.SyncOptions{})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source day")
	cmd.Flags().StringVar(&to, "to", "", "comma separated target days")
	cmd.Flags().BoolVar(&sync, "sync", false, "apply the copied template to the server")
	return cmd
}

func (c *cli) loadTemplate(cmd *cobra.Command, d *deps, fieldID int64, policy string) (model.WeeklyTemplate, bool, error) {
	switch strings.ToLower(policy) {
	case "":
		return d.composer.LoadExistingTemplate(cmd.Context(), fieldID)
	case string(service.EmptyDayOpen), string(service.EmptyDayClosed):
		return d.composer.LoadTemplate(cmd.Context(), fieldID, service.EmptyDayPolicy(strings.ToLower(policy)))
	default:
		return model.WeeklyTemplate{}, false, fmt.Errorf("empty day policy must be open or closed, got %q", policy)
	}
}
