package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// EngineConfig holds trigger-engine tuning values.
type EngineConfig struct {
	// TickIntervalSec is the evaluation cadence in seconds. Correctness
	// holds anywhere in 1-5s; the grace and jitter tolerances absorb it.
	TickIntervalSec int `mapstructure:"tick_interval_sec" yaml:"tick_interval_sec"`

	// GraceWindowSec is how long after its due instant a once reminder may
	// still fire. A reminder missed by more than this never fires.
	GraceWindowSec int `mapstructure:"grace_window_sec" yaml:"grace_window_sec"`
}

// AlertConfig holds settings for alert delivery.
type AlertConfig struct {
	// Notify controls whether OS notifications are dispatched on firing.
	Notify bool `mapstructure:"notify" yaml:"notify"`

	// Sound controls whether a sound is played on firing.
	Sound bool `mapstructure:"sound" yaml:"sound"`

	// DefaultSound is the sound reference used when a reminder has none.
	DefaultSound string `mapstructure:"default_sound" yaml:"default_sound"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// WidgetTheme is one of "glass", "cyber", "retro", "sakura".
	WidgetTheme string `mapstructure:"widget_theme" yaml:"widget_theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath is the SQLite database location. Empty means the default
	// path under the user config directory.
	DBPath  string        `mapstructure:"db_path" yaml:"db_path"`
	Engine  EngineConfig  `mapstructure:"engine" yaml:"engine"`
	Alert   AlertConfig   `mapstructure:"alert" yaml:"alert"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/miniremind/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "miniremind", "config.yaml")
}

// DefaultDBPath returns the default SQLite database path, next to the
// configuration file.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "miniremind.db")
	}
	return filepath.Join(home, ".config", "miniremind", "miniremind.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Engine: EngineConfig{
			TickIntervalSec: 1,
			GraceWindowSec:  60,
		},
		Alert: AlertConfig{
			Notify: true,
			Sound:  true,
		},
		Display: DisplayConfig{
			WidgetTheme: "glass",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("engine.tick_interval_sec", 1)
	v.SetDefault("engine.grace_window_sec", 60)
	v.SetDefault("alert.notify", true)
	v.SetDefault("alert.sound", true)
	v.SetDefault("display.widget_theme", "glass")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Engine.TickIntervalSec <= 0 {
		cfg.Engine.TickIntervalSec = 1
	}
	if cfg.Engine.GraceWindowSec <= 0 {
		cfg.Engine.GraceWindowSec = 60
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("engine", cfg.Engine)
	v.Set("alert", cfg.Alert)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
