package main

import (
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newListCommand(baseLogger pslog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every currently active partition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mgr, err := newManager(ctx, baseLogger)
			if err != nil {
				return err
			}
			defer mgr.Close(ctx)

			renderListing(cmd.OutOrStdout(), mgr.List(wantsVerbose()))
			return nil
		},
	}
}
