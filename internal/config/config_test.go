package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Map.Zoom != 13 {
		t.Errorf("Map.Zoom = %v, want 13", cfg.Map.Zoom)
	}
	if cfg.Map.PanDuration != time.Second {
		t.Errorf("Map.PanDuration = %v, want 1s", cfg.Map.PanDuration)
	}
	if cfg.Location.Provider != ProviderIP {
		t.Errorf("Location.Provider = %q, want %q", cfg.Location.Provider, ProviderIP)
	}
	if cfg.Storage.Key != "workouts" {
		t.Errorf("Storage.Key = %q, want %q", cfg.Storage.Key, "workouts")
	}
	if cfg.Display.DistanceUnit != "km" {
		t.Errorf("Display.DistanceUnit = %q, want %q", cfg.Display.DistanceUnit, "km")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "zoom too high",
			mutate:      func(c *Config) { c.Map.Zoom = 25 },
			expectError: true,
			errContains: "map.zoom",
		},
		{
			name:        "zoom zero",
			mutate:      func(c *Config) { c.Map.Zoom = 0 },
			expectError: true,
			errContains: "map.zoom",
		},
		{
			name:        "unknown provider",
			mutate:      func(c *Config) { c.Location.Provider = "gps" },
			expectError: true,
			errContains: "location.provider",
		},
		{
			name: "static provider without position",
			mutate: func(c *Config) {
				c.Location.Provider = ProviderStatic
			},
			expectError: true,
			errContains: "static provider",
		},
		{
			name: "static provider with position",
			mutate: func(c *Config) {
				c.Location.Provider = ProviderStatic
				c.Location.Latitude = 52.37
				c.Location.Longitude = 4.89
			},
		},
		{
			name:        "latitude out of range",
			mutate:      func(c *Config) { c.Location.Latitude = 95 },
			expectError: true,
			errContains: "location.latitude",
		},
		{
			name:        "bad distance unit",
			mutate:      func(c *Config) { c.Display.DistanceUnit = "yards" },
			expectError: true,
			errContains: "display.distance_unit",
		},
		{
			name:        "missing storage key",
			mutate:      func(c *Config) { c.Storage.Key = "" },
			expectError: true,
			errContains: "storage.key",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.Log.Level = "verbose" },
			expectError: true,
			errContains: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if !tt.expectError {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v should wrap ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Map.Zoom != 13 {
		t.Errorf("Map.Zoom = %v, want 13", cfg.Map.Zoom)
	}
	wantDB := filepath.Join(home, ".maptrack", "data.db")
	if cfg.Storage.Path != wantDB {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, wantDB)
	}
	wantLog := filepath.Join(home, ".maptrack", "maptrack.log")
	if cfg.Log.File != wantLog {
		t.Errorf("Log.File = %q, want %q", cfg.Log.File, wantLog)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.json")

	content := `{
		"map": {"zoom": 15},
		"location": {"provider": "static", "latitude": 40.4, "longitude": -3.7},
		"display": {"distance_unit": "mi"}
	}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MAPTRACK_MAP_ZOOM", "11")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Map.Zoom != 11 {
		t.Errorf("Map.Zoom = %v, want 11 from environment", cfg.Map.Zoom)
	}
	if cfg.Location.Provider != ProviderStatic {
		t.Errorf("Location.Provider = %q, want static", cfg.Location.Provider)
	}
	if cfg.Location.Latitude != 40.4 {
		t.Errorf("Location.Latitude = %v, want 40.4", cfg.Location.Latitude)
	}
	if cfg.Display.DistanceUnit != "mi" {
		t.Errorf("Display.DistanceUnit = %q, want mi", cfg.Display.DistanceUnit)
	}
	// untouched keys keep their defaults
	if cfg.Storage.Key != "workouts" {
		t.Errorf("Storage.Key = %q, want workouts", cfg.Storage.Key)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestCreateExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	written, err := CreateExample(path)
	if err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}
	if !written {
		t.Error("expected example to be written")
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Map.PanDuration != time.Second {
		t.Errorf("Map.PanDuration = %v, want 1s after round trip", cfg.Map.PanDuration)
	}

	written, err = CreateExample(path)
	if err != nil {
		t.Fatalf("second CreateExample() error = %v", err)
	}
	if written {
		t.Error("existing config must not be overwritten")
	}
}
