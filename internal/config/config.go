// Package config loads and saves the ocalcli configuration file.
//
// The file is YAML under the user config directory; first run writes a
// default file with 0600 permissions. Environment variables of the form
// OCALCLI_<KEY> override individual values for one invocation.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in the configuration.
const (
	ProviderGraph  = "graph"
	ProviderGoogle = "google"
)

// Config is the top-level application configuration.
type Config struct {
	// Provider selects the calendar backend: "graph" or "google".
	Provider string `yaml:"provider" json:"provider"`

	// Timezone is the configured default IANA timezone (e.g. "Europe/Dublin").
	// Empty means "use the system timezone".
	Timezone string `yaml:"timezone" json:"timezone"`

	// ClientID is the app registration client ID for the graph provider.
	ClientID string `yaml:"client_id" json:"client_id"`

	// Tenant is the directory tenant, or "organizations" for multi-tenant.
	Tenant string `yaml:"tenant" json:"tenant"`

	// CalendarID selects a non-primary calendar; empty means primary.
	CalendarID string `yaml:"calendar_id" json:"calendar_id"`

	// GoogleCredentials is the path to an OAuth client secrets JSON file,
	// used by the google provider.
	GoogleCredentials string `yaml:"google_credentials" json:"google_credentials"`

	// RefreshCron is the cron schedule used by `ocalcli watch`.
	RefreshCron string `yaml:"refresh" json:"refresh"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGraph,
		Tenant:      "organizations",
		RefreshCron: "*/15 * * * *",
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ocalcli", "config.yaml"), nil
}

// Normalize fills in missing values with defaults so that partially-filled
// configs from older versions still behave.
func (c *Config) Normalize() {
	switch c.Provider {
	case ProviderGraph, ProviderGoogle:
		// ok
	default:
		c.Provider = ProviderGraph
	}
	if c.Tenant == "" {
		c.Tenant = "organizations"
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/15 * * * *"
	}
}

// applyEnv overrides individual values from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("OCALCLI_TZ"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("OCALCLI_CLIENT_ID"); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv("OCALCLI_TENANT"); v != "" {
		c.Tenant = v
	}
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (parent
// directory created as needed, file mode 0600) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			cfg.applyEnv()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	cfg.applyEnv()

	return &cfg, nil
}

// Save writes the configuration atomically: temp file in the same
// directory, fsync, chmod 0600, rename over the target.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".ocalcli-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method delegating to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
