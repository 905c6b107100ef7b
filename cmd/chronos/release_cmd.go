package main

import (
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newReleaseCommand(baseLogger pslog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "release <partitionId>",
		Short: "End a partition before its deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mgr, err := newManager(ctx, baseLogger)
			if err != nil {
				return err
			}
			defer mgr.Close(ctx)

			return mgr.Release(args[0])
		},
	}
}
