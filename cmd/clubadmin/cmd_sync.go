package main

import (
	"fmt"

	"github.com/Freeeeeet/club_admin/internal/controller/formatting"
	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (c *cli) newSyncCmd() *cobra.Command {
	var (
		sets     []string
		copies   []string
		duration int
		reset    bool
		dryRun   bool
		extend   bool
		policy   string
	)

	cmd := &cobra.Command{
		Use:   "sync <field-id>",
		Short: "Reconcile the field's slots with its weekly template",
		Long: "Loads the template rebuilt from the field's slots (or an empty one with --reset),\n" +
			"applies --set and --copy, validates it and creates or deletes slots over the horizon.\n\n" +
			"  clubadmin sync 3 --set monday=08:00-22:00 --copy monday:tuesday,wednesday --set sunday=closed",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fieldID, err := parseFieldID(args[0])
			if err != nil {
				return err
			}
			d, err := c.services(cmd)
			if err != nil {
				return err
			}

			tpl := model.NewWeeklyTemplate()
			if !reset {
				if tpl, _, err = c.loadTemplate(cmd, d, fieldID, policy); err != nil {
					return err
				}
			}
			if err := applyDaySettings(&tpl, sets); err != nil {
				return err
			}
			if err := applyCopies(&tpl, copies); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatting.FormatTemplate(tpl))

			opts := service.SyncOptions{SlotDuration: duration, ExtendOnly: extend}
			if dryRun {
				plan, err := d.composer.Preview(cmd.Context(), fieldID, tpl, opts)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nГоризонт %s .. %s: создать %d, удалить %d\n",
					model.FormatDate(plan.Horizon.Start), model.FormatDate(plan.Horizon.End),
					len(plan.Creates), len(plan.Deletes))
				for _, s := range plan.Deletes {
					fmt.Fprintf(out, "  - %s\n", s.String())
				}
				return nil
			}

			return c.runSync(cmd, d, fieldID, tpl, opts)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "day hours: day=HH:mm-HH:mm, day=closed or day=open (repeatable)")
	cmd.Flags().StringArrayVar(&copies, "copy", nil, "copy hours: from:to[,to...] (repeatable)")
	cmd.Flags().IntVar(&duration, "duration", 0, "slot duration in minutes (defaults to the field's slot_duration)")
	cmd.Flags().BoolVar(&reset, "reset", false, "start from an empty template instead of the current one")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only show what would change")
	cmd.Flags().BoolVar(&extend, "extend-only", false, "only create slots after the last existing date, keep everything else")
	cmd.Flags().StringVar(&policy, "empty-days", "", "treat days without slots as open or closed (defaults to EMPTY_DAY_POLICY)")

	cmd.AddCommand(c.newSyncRetryCmd(), c.newSyncHistoryCmd())
	return cmd
}

func (c *cli) runSync(cmd *cobra.Command, d *deps, fieldID int64, tpl model.WeeklyTemplate, opts service.SyncOptions) error {
	run, err := d.composer.Sync(cmd.Context(), fieldID, tpl, opts)
	if err != nil {
		return err
	}
	return printRun(cmd, run)
}

func printRun(cmd *cobra.Command, run *model.SyncRun) error {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", formatting.FormatRun(run))
	if !run.OK() {
		return fmt.Errorf("sync %s finished with %d failed operations", run.ID, len(run.Failed))
	}
	return nil
}

func (c *cli) newSyncRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <run-id>",
		Short: "Re-issue the failed operations of a journaled sync",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}
			d, err := c.services(cmd)
			if err != nil {
				return err
			}

			run, err := d.composer.RetryFailed(cmd.Context(), runID)
			if err != nil {
				return err
			}
			return printRun(cmd, run)
		},
	}
}

func (c *cli) newSyncHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <field-id>",
		Short: "List recent journaled syncs of a field",
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
			if d.journal == nil {
				return service.ErrJournalDisabled
			}

			runs, err := d.journal.GetRecentByFieldID(cmd.Context(), fieldID, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintf(out, "Для поля %d синхронизаций нет\n", fieldID)
				return nil
			}
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %s  создано %d  удалено %d  ошибок %d\n",
					run.ID, formatting.FormatDateTime(run.StartedAt.In(c.cfg.Location)),
					run.Created, run.Deleted, len(run.Failed))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show")
	return cmd
}
