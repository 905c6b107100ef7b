package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ojimaabraham/chronos"
	"github.com/ojimaabraham/chronos/internal/gpuenum"
	"github.com/ojimaabraham/chronos/internal/pathutil"
	"pkt.systems/pslog"
)

// loadConfigFile resolves, in order: an explicit --config/CHRONOS_CONFIG
// path, then ~/.config/chronos/config.yaml if present. Absence of either is
// not an error — flags and environment variables still apply via viper's
// layering.
func loadConfigFile() error {
	cfgPath := strings.TrimSpace(viper.GetString("config"))
	explicit := cfgPath != ""

	if cfgPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			candidate := filepath.Join(home, ".config", "chronos", "config.yaml")
			if _, err := os.Stat(candidate); err == nil {
				cfgPath = candidate
			}
		}
	}
	if cfgPath == "" {
		return nil
	}

	expanded, err := pathutil.ResolveConfigPath(cfgPath)
	if err != nil {
		return fmt.Errorf("resolve config path %q: %w", cfgPath, err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("config file %q: %w", expanded, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config file %q is a directory", expanded)
	}

	viper.SetConfigFile(expanded)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %q: %w", expanded, err)
	}
	return nil
}

// chronosConfigFromViper builds a chronos.Config from the layered
// configuration: defaults, then config file, then CHRONOS_* environment
// variables, then flags — viper's own precedence order.
func chronosConfigFromViper(baseLogger pslog.Logger) chronos.Config {
	backend := gpuenum.Backend(strings.TrimSpace(viper.GetString("gpu-backend")))
	return chronos.Config{
		Backend: backend,
		LockDir: strings.TrimSpace(viper.GetString("lock-dir")),
		Logger:  baseLogger,
	}
}

// newManager builds a chronos.Manager from the layered configuration.
func newManager(ctx context.Context, baseLogger pslog.Logger) (*chronos.Manager, error) {
	return chronos.NewManager(ctx, chronosConfigFromViper(baseLogger))
}

func wantsHuman() bool {
	return viper.GetBool("human")
}

func wantsVerbose() bool {
	return viper.GetBool("verbose")
}
