package main

import (
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newStatsCommand(baseLogger pslog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print per-device utilization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mgr, err := newManager(ctx, baseLogger)
			if err != nil {
				return err
			}
			defer mgr.Close(ctx)

			renderDeviceStats(cmd.OutOrStdout(), mgr.DeviceStats(), wantsHuman())
			return nil
		},
	}
}
