package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newCreateCommand(baseLogger pslog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "create <deviceIdx> <memoryFraction> <durationSeconds>",
		Short: "Admit a new time-bounded partition on a device",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceIdx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid device index %q: %w", args[0], err)
			}
			fraction, err := strconv.ParseFloat(args[1], 32)
			if err != nil {
				return fmt.Errorf("invalid memory fraction %q: %w", args[1], err)
			}
			duration, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", args[2], err)
			}

			ctx := cmd.Context()
			mgr, err := newManager(ctx, baseLogger)
			if err != nil {
				return err
			}
			defer mgr.Close(ctx)

			id, err := mgr.Create(deviceIdx, float32(fraction), duration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
