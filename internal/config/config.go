package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Location providers
const (
	ProviderIP     = "ip"
	ProviderStatic = "static"
)

// Config represents the application configuration
type Config struct {
	Map      MapConfig      `json:"map" mapstructure:"map"`
	Location LocationConfig `json:"location" mapstructure:"location"`
	Storage  StorageConfig  `json:"storage" mapstructure:"storage"`
	Display  DisplayConfig  `json:"display" mapstructure:"display"`
	Log      LogConfig      `json:"log" mapstructure:"log"`
}

// MapConfig holds map view settings
type MapConfig struct {
	Zoom        int           `json:"zoom" mapstructure:"zoom" validate:"gte=1,lte=19"`
	PanDuration time.Duration `json:"pan_duration" mapstructure:"pan_duration" validate:"gte=0"`
}

// LocationConfig selects how the starting position is obtained
type LocationConfig struct {
	Provider  string        `json:"provider" mapstructure:"provider" validate:"oneof=ip static"`
	Endpoint  string        `json:"endpoint,omitempty" mapstructure:"endpoint" validate:"omitempty,url"`
	Latitude  float64       `json:"latitude" mapstructure:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64       `json:"longitude" mapstructure:"longitude" validate:"gte=-180,lte=180"`
	Timeout   time.Duration `json:"timeout" mapstructure:"timeout" validate:"gte=0"`
}

// StorageConfig holds the location of the durable workout slot
type StorageConfig struct {
	Path string `json:"path,omitempty" mapstructure:"path"`
	Key  string `json:"key" mapstructure:"key" validate:"required"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit" mapstructure:"distance_unit" validate:"oneof=km mi"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" mapstructure:"format" validate:"oneof=text json"`
	File   string `json:"file,omitempty" mapstructure:"file"`
}

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Map: MapConfig{
			Zoom:        13,
			PanDuration: time.Second,
		},
		Location: LocationConfig{
			Provider: ProviderIP,
			Endpoint: "http://ip-api.com/json/",
			Timeout:  10 * time.Second,
		},
		Storage: StorageConfig{
			Key: "workouts",
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration from path, or ~/.maptrack/config.json when path is empty.
// A missing file is not an error: defaults and MAPTRACK_* environment overrides apply.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix("MAPTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("map.zoom", d.Map.Zoom)
	v.SetDefault("map.pan_duration", d.Map.PanDuration)
	v.SetDefault("location.provider", d.Location.Provider)
	v.SetDefault("location.endpoint", d.Location.Endpoint)
	v.SetDefault("location.latitude", d.Location.Latitude)
	v.SetDefault("location.longitude", d.Location.Longitude)
	v.SetDefault("location.timeout", d.Location.Timeout)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("display.distance_unit", d.Display.DistanceUnit)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

// resolvePaths fills in the data and log file locations under the config directory
func (c *Config) resolvePaths() error {
	if c.Storage.Path != "" && c.Log.File != "" {
		return nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(dir, "data.db")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(dir, "maptrack.log")
	}
	return nil
}

// Save writes the configuration to path, or ~/.maptrack/config.json when path is empty
func Save(path string, cfg *Config) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample writes the default config to path if no file exists there.
// It reports whether a file was written.
func CreateExample(path string) (bool, error) {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return false, err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		return false, nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	if err := Save(path, &example); err != nil {
		return false, err
	}
	return true, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".maptrack"), nil
}
