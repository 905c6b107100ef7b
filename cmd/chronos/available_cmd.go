package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newAvailableCommand(baseLogger pslog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "available <deviceIdx>",
		Short: "Print the percentage of a device's memory this process has not reserved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceIdx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid device index %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			mgr, err := newManager(ctx, baseLogger)
			if err != nil {
				return err
			}
			defer mgr.Close(ctx)

			fraction, err := mgr.AvailableFraction(deviceIdx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", fraction*100)
			return nil
		},
	}
}
