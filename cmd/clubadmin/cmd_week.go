package main

import (
	"fmt"

	"github.com/Freeeeeet/club_admin/internal/controller/formatting"
	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) newWeekCmd() *cobra.Command {
	var (
		offset  int
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "week <field-id>",
		Short: "Show the availability grid of a week",
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

			if refresh && d.cache != nil {
				if err := d.cache.InvalidateField(cmd.Context(), fieldID); err != nil {
					c.logger.Warn("Failed to invalidate field cache", zap.Int64("field_id", fieldID), zap.Error(err))
				}
			}

			grid, err := d.projector.BuildWeek(cmd.Context(), fieldID, offset)
			if err != nil {
				return err
			}
			return formatting.WriteGrid(cmd.OutOrStdout(), grid)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "weeks relative to the current one")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload field metadata instead of using the cache")
	return cmd
}

func (c *cli) newSlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Change individual cells of the grid",
	}
	cmd.AddCommand(c.newSlotSetCmd())
	return cmd
}

func (c *cli) newSlotSetCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "set <field-id> <day> <HH:mm> <available|booked|maintenance>",
		Short: "Set the status of the cell at day and hour",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			fieldID, err := parseFieldID(args[0])
			if err != nil {
				return err
			}
			day, err := model.ParseWeekday(args[1])
			if err != nil {
				return err
			}
			requested, err := model.ParseSlotStatus(args[3])
			if err != nil {
				return err
			}
			d, err := c.services(cmd)
			if err != nil {
				return err
			}

			grid, err := d.projector.BuildWeek(cmd.Context(), fieldID, offset)
			if err != nil {
				return err
			}
			cell, err := service.CellAt(grid.Slots, grid.WeekStart, day, args[2], grid.Field.SlotDuration)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !service.Allowed(cell, requested) {
				fmt.Fprintf(out, "%s %s: %s, менять нечего\n", day.Label(), args[2], service.Label(cell))
				return nil
			}

			updated, err := d.actions.UpdateSlotStatus(cmd.Context(), fieldID, cell, requested)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s: %s -> %s\n", day.Label(), args[2], service.Label(cell), service.Label(updated))
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "weeks relative to the current one")
	return cmd
}
