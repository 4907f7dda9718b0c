package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yllada/tunnelsplit/common"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SaveDebounce() != common.DefaultSaveDebounce {
		t.Errorf("SaveDebounce() = %v, want %v", cfg.SaveDebounce(), common.DefaultSaveDebounce)
	}
	if cfg.BridgeTimeout() != common.DefaultBridgeTimeout {
		t.Errorf("BridgeTimeout() = %v, want %v", cfg.BridgeTimeout(), common.DefaultBridgeTimeout)
	}
	if cfg.CacheTTL() != common.DefaultCacheTTL {
		t.Errorf("CacheTTL() = %v, want %v", cfg.CacheTTL(), common.DefaultCacheTTL)
	}
	if !cfg.ShowNotifications {
		t.Error("ShowNotifications should be true by default")
	}
	if cfg.ShowSystemApps {
		t.Error("ShowSystemApps should be false by default")
	}
	if cfg.Theme != common.ThemeAuto {
		t.Errorf("Theme = %q, want %q", cfg.Theme, common.ThemeAuto)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want func(t *testing.T, c *Config)
	}{
		{
			name: "negative debounce falls back",
			in:   Config{SaveDebounceMs: -100, BridgeTimeoutMs: 5000, CacheTTLHours: 1, Theme: "dark"},
			want: func(t *testing.T, c *Config) {
				if c.SaveDebounce() != common.DefaultSaveDebounce {
					t.Errorf("SaveDebounce() = %v, want default", c.SaveDebounce())
				}
			},
		},
		{
			name: "zero timeout falls back",
			in:   Config{SaveDebounceMs: 500, BridgeTimeoutMs: 0, CacheTTLHours: 1, Theme: "light"},
			want: func(t *testing.T, c *Config) {
				if c.BridgeTimeout() != common.DefaultBridgeTimeout {
					t.Errorf("BridgeTimeout() = %v, want default", c.BridgeTimeout())
				}
			},
		},
		{
			name: "unknown theme falls back to auto",
			in:   Config{SaveDebounceMs: 500, BridgeTimeoutMs: 5000, CacheTTLHours: 1, Theme: "neon"},
			want: func(t *testing.T, c *Config) {
				if c.Theme != common.ThemeAuto {
					t.Errorf("Theme = %q, want %q", c.Theme, common.ThemeAuto)
				}
			},
		},
		{
			name: "valid values untouched",
			in:   Config{SaveDebounceMs: 300, BridgeTimeoutMs: 2000, CacheTTLHours: 12, Theme: "dark"},
			want: func(t *testing.T, c *Config) {
				if c.SaveDebounce() != 300*time.Millisecond {
					t.Errorf("SaveDebounce() = %v, want 300ms", c.SaveDebounce())
				}
				if c.Theme != common.ThemeDark {
					t.Errorf("Theme = %q, want dark", c.Theme)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.validate()
			tt.want(t, &cfg)
		})
	}
}

func TestConfig_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.SaveDebounceMs = 250
	cfg.ShowSystemApps = true
	cfg.Theme = common.ThemeDark

	if err := cfg.saveTo(path); err != nil {
		t.Fatalf("saveTo() error = %v", err)
	}

	loaded, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}

	if loaded.SaveDebounceMs != 250 {
		t.Errorf("SaveDebounceMs = %d, want 250", loaded.SaveDebounceMs)
	}
	if !loaded.ShowSystemApps {
		t.Error("ShowSystemApps lost in roundtrip")
	}
	if loaded.Theme != common.ThemeDark {
		t.Errorf("Theme = %q, want dark", loaded.Theme)
	}
}

func TestConfig_LoadMissingCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.SaveDebounce() != common.DefaultSaveDebounce {
		t.Errorf("SaveDebounce() = %v, want default", cfg.SaveDebounce())
	}

	// The default file should now exist on disk.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

func TestConfig_LoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "save_debounce_ms: 500\nno_such_setting: true\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := loadFrom(path); err == nil {
		t.Error("loadFrom() should reject unknown fields")
	}
}
