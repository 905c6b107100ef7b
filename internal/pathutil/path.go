// Package pathutil resolves the one user-supplied path chronos ever needs
// to expand: the --config/CHRONOS_CONFIG value. It is grounded on the
// teacher's own internal/pathutil package (used verbatim by its client and
// server config loaders for bundle paths), narrowed to what a single CLI
// config-path argument needs rather than kept as a general-purpose helper.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveConfigPath expands environment variable tokens and a leading "~"
// home-directory shorthand in p, then resolves the result to an absolute
// path — the same two steps the teacher's cmd/lockd/app.go applies to
// --config before handing it to viper, folded into one call instead of
// leaving the absolute-path step to the caller.
func ResolveConfigPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", nil
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("pathutil: resolve home directory: %w", err)
		}
		switch {
		case len(p) == 1:
			p = home
		case p[1] == '/' || p[1] == '\\':
			p = filepath.Join(home, p[2:])
		}
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("pathutil: resolve %q to an absolute path: %w", p, err)
	}
	return abs, nil
}
