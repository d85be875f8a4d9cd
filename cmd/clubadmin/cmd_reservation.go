package main

import (
	"fmt"
	"strconv"

	"github.com/Freeeeeet/club_admin/internal/controller/formatting"
	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/spf13/cobra"
)

func (c *cli) newReservationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservation",
		Short: "Change reservation status",
	}
	cmd.AddCommand(
		c.newReservationStatusCmd("cancel", model.ReservationStatusCancelled),
		c.newReservationStatusCmd("confirm", model.ReservationStatusConfirmed),
	)
	return cmd
}

func (c *cli) newReservationStatusCmd(use string, status model.ReservationStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <reservation-id>",
		Short: fmt.Sprintf("Mark a reservation as %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid reservation id %q", args[0])
			}
			d, err := c.services(cmd)
			if err != nil {
				return err
			}

			if status == model.ReservationStatusCancelled {
				_, err = d.reservations.Cancel(cmd.Context(), id, nil)
			} else {
				err = d.reservations.Confirm(cmd.Context(), id)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Бронь %d: %s\n", id, formatting.GetReservationStatusText(status))
			return nil
		},
	}
}
