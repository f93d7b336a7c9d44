package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hamzaafridi/ocalcli/internal/config"
)

// The flag-less invocation is an inspection and must not write anything.
// This runs before TestConfigureWithFlagSaves: setting a cobra flag marks it
// changed for the life of the process.
func TestConfigureWithoutFlagsDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	prev := flagConfig
	flagConfig = path
	t.Cleanup(func() { flagConfig = prev })
	cfg = config.DefaultConfig()

	if err := configureCmd.RunE(configureCmd, nil); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("config file written on flag-less configure: %v", err)
	}
}

func TestConfigureWithFlagSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	prev := flagConfig
	flagConfig = path
	t.Cleanup(func() { flagConfig = prev })
	t.Setenv("OCALCLI_TZ", "")
	cfg = config.DefaultConfig()

	if err := configureCmd.Flags().Set("timezone", "Europe/Dublin"); err != nil {
		t.Fatal(err)
	}
	if err := configureCmd.RunE(configureCmd, nil); err != nil {
		t.Fatalf("configure: %v", err)
	}

	saved, err := config.Load(path)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if saved.Timezone != "Europe/Dublin" {
		t.Errorf("Timezone = %q, want Europe/Dublin", saved.Timezone)
	}
}
