package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveConfigPathEmpty(t *testing.T) {
	got, err := ResolveConfigPath("   ")
	if err != nil {
		t.Fatalf("ResolveConfigPath: %v", err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestResolveConfigPathExpandsEnvVars(t *testing.T) {
	os.Setenv("CHRONOS_PATHUTIL_TEST", "configured")
	defer os.Unsetenv("CHRONOS_PATHUTIL_TEST")

	got, err := ResolveConfigPath("$CHRONOS_PATHUTIL_TEST/chronos.yaml")
	if err != nil {
		t.Fatalf("ResolveConfigPath: %v", err)
	}
	want, err := filepath.Abs("configured/chronos.yaml")
	if err != nil {
		t.Fatalf("filepath.Abs: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveConfigPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory available: %v", err)
	}

	got, err := ResolveConfigPath("~/.config/chronos/config.yaml")
	if err != nil {
		t.Fatalf("ResolveConfigPath: %v", err)
	}
	want := filepath.Join(home, ".config", "chronos", "config.yaml")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveConfigPathBareTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory available: %v", err)
	}

	got, err := ResolveConfigPath("~")
	if err != nil {
		t.Fatalf("ResolveConfigPath: %v", err)
	}
	if got != home {
		t.Fatalf("got %q, want %q", got, home)
	}
}

func TestResolveConfigPathMadeAbsolute(t *testing.T) {
	got, err := ResolveConfigPath("relative/chronos.yaml")
	if err != nil {
		t.Fatalf("ResolveConfigPath: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Fatalf("got %q, want an absolute path", got)
	}
}

func TestResolveConfigPathAbsoluteUnchanged(t *testing.T) {
	got, err := ResolveConfigPath("/etc/chronos/config.yaml")
	if err != nil {
		t.Fatalf("ResolveConfigPath: %v", err)
	}
	if got != "/etc/chronos/config.yaml" {
		t.Fatalf("got %q, want unchanged absolute path", got)
	}
}
