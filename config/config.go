// Package config provides configuration management for Tunnelsplit.
// It handles loading, saving, and validating application settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yllada/tunnelsplit/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// SaveDebounceMs is the quiet period, in milliseconds, before a
	// changed selection is pushed to the helper.
	SaveDebounceMs int `yaml:"save_debounce_ms"`
	// BridgeTimeoutMs is the per-call timeout for helper invocations.
	BridgeTimeoutMs int `yaml:"bridge_timeout_ms"`
	// ShowNotifications enables desktop notifications for save failures.
	ShowNotifications bool `yaml:"show_notifications"`
	// ShowSystemApps includes system services in the application list.
	ShowSystemApps bool `yaml:"show_system_apps"`
	// CacheTTLHours is how long the cached catalog is considered fresh.
	CacheTTLHours int `yaml:"cache_ttl_hours"`
	// Theme sets the color theme: "light", "dark", or "auto".
	Theme string `yaml:"theme"`
}

// DefaultConfig returns the default configuration.
// These are sensible defaults for most users.
func DefaultConfig() *Config {
	return &Config{
		SaveDebounceMs:    int(common.DefaultSaveDebounce / time.Millisecond),
		BridgeTimeoutMs:   int(common.DefaultBridgeTimeout / time.Millisecond),
		ShowNotifications: true,
		ShowSystemApps:    false,
		CacheTTLHours:     int(common.DefaultCacheTTL / time.Hour),
		Theme:             common.ThemeAuto,
	}
}

// SaveDebounce returns the debounce interval as a duration.
func (c *Config) SaveDebounce() time.Duration {
	return time.Duration(c.SaveDebounceMs) * time.Millisecond
}

// BridgeTimeout returns the bridge call timeout as a duration.
func (c *Config) BridgeTimeout() time.Duration {
	return time.Duration(c.BridgeTimeoutMs) * time.Millisecond
}

// CacheTTL returns the catalog cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// Load loads the configuration from the config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return loadFrom(configPath)
}

func loadFrom(configPath string) (*Config, error) {
	// If it doesn't exist, return default configuration
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.saveTo(configPath); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("error opening configuration: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	var config Config
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("error parsing configuration: %w", err)
	}

	config.validate()

	return &config, nil
}

// validate clamps invalid values back to their defaults.
func (c *Config) validate() {
	def := DefaultConfig()

	if c.SaveDebounceMs <= 0 {
		c.SaveDebounceMs = def.SaveDebounceMs
	}
	if c.BridgeTimeoutMs <= 0 {
		c.BridgeTimeoutMs = def.BridgeTimeoutMs
	}
	if c.CacheTTLHours <= 0 {
		c.CacheTTLHours = def.CacheTTLHours
	}

	switch c.Theme {
	case common.ThemeAuto, common.ThemeLight, common.ThemeDark:
	default:
		c.Theme = common.ThemeAuto
	}
}

// Save saves the configuration to the file.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.saveTo(configPath)
}

func (c *Config) saveTo(configPath string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error serializing configuration: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}

	return nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", common.ConfigDirName, common.ConfigFileName), nil
}
