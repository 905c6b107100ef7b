package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"pkt.systems/pslog"

	"github.com/ojimaabraham/chronos/internal/lockstore"
	"github.com/ojimaabraham/chronos/internal/platform"
)

func resolveLockDir() string {
	if dir := strings.TrimSpace(viper.GetString("lock-dir")); dir != "" {
		return dir
	}
	return platform.DefaultLockDir(platform.New())
}

func newLocksCommand(baseLogger pslog.Logger) *cobra.Command {
	locks := &cobra.Command{
		Use:   "locks",
		Short: "Inspect the on-disk lock directory (administrative, read-only)",
	}
	locks.AddCommand(newLocksListCommand(), newLocksWatchCommand(baseLogger))
	return locks
}

func newLocksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every lock file currently on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := resolveLockDir()
			infos, err := lockstore.ListLocks(dir)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No lock files")
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tpartition=%s device=%d fraction=%v owner=%s pid=%d host=%s time=%s\n",
					info.Path, info.Partition, info.Device, info.Fraction, info.User, info.Pid, info.Host, info.Time)
			}
			return nil
		},
	}
}

func newLocksWatchCommand(baseLogger pslog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream lock file create/remove/change events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := resolveLockDir()
			ctx := cmd.Context()
			events, err := lockstore.Watch(ctx, dir)
			if err != nil {
				return err
			}
			logger := baseLogger.With("component", "cli.locks.watch")
			logger.Info("locks.watch.started", "dir", dir)
			for ev := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ev.Kind, ev.Path)
			}
			return nil
		},
	}
}
