package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadFirstRunWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderGraph {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderGraph)
	}
	if cfg.Tenant != "organizations" {
		t.Errorf("Tenant = %q", cfg.Tenant)
	}
	if cfg.RefreshCron == "" {
		t.Error("RefreshCron not defaulted")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default file not written: %v", err)
	}
	if runtime.GOOS != "windows" {
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("file mode = %o, want 600", perm)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := &Config{
		Provider:          ProviderGoogle,
		Timezone:          "Europe/Dublin",
		CalendarID:        "work",
		GoogleCredentials: "/tmp/secrets.json",
		RefreshCron:       "0 * * * *",
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Provider != ProviderGoogle || out.Timezone != "Europe/Dublin" ||
		out.CalendarID != "work" || out.GoogleCredentials != "/tmp/secrets.json" ||
		out.RefreshCron != "0 * * * *" {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	c := &Config{Provider: "frobnicator"}
	c.Normalize()
	if c.Provider != ProviderGraph {
		t.Errorf("Provider = %q, want fallback %q", c.Provider, ProviderGraph)
	}
	if c.Tenant == "" || c.RefreshCron == "" {
		t.Errorf("defaults not filled: %+v", c)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, &Config{Provider: ProviderGraph, Timezone: "UTC", ClientID: "from-file"}); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OCALCLI_TZ", "Asia/Tokyo")
	t.Setenv("OCALCLI_CLIENT_ID", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timezone != "Asia/Tokyo" {
		t.Errorf("Timezone = %q, want env override", cfg.Timezone)
	}
	if cfg.ClientID != "from-env" {
		t.Errorf("ClientID = %q, want env override", cfg.ClientID)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("\tnot yaml: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML: want error")
	}
}

func TestEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("Load(\"\"): want error")
	}
	if err := Save("", DefaultConfig()); err == nil {
		t.Error("Save(\"\"): want error")
	}
}
