package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"pkt.systems/pslog"
)

func newRootCommand(baseLogger pslog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "chronos",
		Short:         "Time-bounded GPU memory partitions on a single host",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a YAML config file (default: $CHRONOS_CONFIG or ~/.config/chronos/config.yaml)")
	flags.String("lock-dir", "", "base directory for lock files (default: platform temp dir + chronos_locks/)")
	flags.String("gpu-backend", "nvml", "device enumerator backend: nvml or static")
	flags.Bool("human", false, "augment stats output with humanized byte sizes")
	flags.Bool("verbose", false, "also emit the listing to the structured logger")

	bindFlags(flags, "config", "lock-dir", "gpu-backend", "human", "verbose")
	viper.SetEnvPrefix("CHRONOS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return loadConfigFile()
	}

	root.AddCommand(
		newCreateCommand(baseLogger),
		newListCommand(baseLogger),
		newReleaseCommand(baseLogger),
		newStatsCommand(baseLogger),
		newAvailableCommand(baseLogger),
		newVersionCommand(),
		newLocksCommand(baseLogger),
		newMetricsCommand(baseLogger),
	)
	return root
}

func bindFlags(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if flag := flags.Lookup(name); flag != nil {
			_ = viper.BindPFlag(name, flag)
		}
	}
}
