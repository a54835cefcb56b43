package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"multitimer/internal/timer"
)

type Preset struct {
	Label   string  `toml:"label"`
	Minutes float64 `toml:"minutes"`
}

// Duration is only meaningful for presets that passed validation.
func (p Preset) Duration() time.Duration {
	d, _ := timer.MinutesToDuration(p.Minutes)
	return d
}

type Config struct {
	Presets              []Preset `toml:"presets"`
	CustomDefaultMinutes string   `toml:"custom_default_minutes"`
	TickInterval         Duration `toml:"tick_interval"`
	AlertStyle           string   `toml:"alert_style"`
	SoundEnabled         bool     `toml:"sound_enabled"`
	HistoryEnabled       bool     `toml:"history_enabled"`
	DBPath               string   `toml:"db_path"`
	LogLevel             string   `toml:"log_level"`
	ConfigPath           string   `toml:"-"`
}

// Duration lets toml files say tick_interval = "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func DefaultPresets() []Preset {
	return []Preset{
		{Label: "1 minute", Minutes: 1},
		{Label: "5 minutes", Minutes: 5},
		{Label: "10 minutes", Minutes: 10},
		{Label: "30 minutes", Minutes: 30},
		{Label: "1 hour", Minutes: 60},
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "multitimer", "config.toml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "multitimer", "history.db")
}

func Load(configPath string) (*Config, error) {
	cfg := &Config{
		CustomDefaultMinutes: "5",
		TickInterval:         Duration{time.Second},
		AlertStyle:           "alert",
		SoundEnabled:         true,
		HistoryEnabled:       true,
		DBPath:               defaultDBPath(),
		LogLevel:             "info",
	}

	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg.ConfigPath = configPath

	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if envSound := os.Getenv("MULTITIMER_SOUND"); envSound != "" {
		enabled, err := strconv.ParseBool(envSound)
		if err != nil {
			return nil, fmt.Errorf("parsing MULTITIMER_SOUND: %w", err)
		}
		cfg.SoundEnabled = enabled
	}

	if envLevel := os.Getenv("MULTITIMER_LOG_LEVEL"); envLevel != "" {
		cfg.LogLevel = envLevel
	}

	if envDB := os.Getenv("MULTITIMER_DB_PATH"); envDB != "" {
		cfg.DBPath = envDB
	}

	if len(cfg.Presets) == 0 {
		cfg.Presets = DefaultPresets()
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.TickInterval.Duration <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	for _, p := range c.Presets {
		if _, err := timer.MinutesToDuration(p.Minutes); err != nil {
			return fmt.Errorf("preset %q: %w", p.Label, err)
		}
		if strings.TrimSpace(p.Label) == "" {
			return fmt.Errorf("preset with %g minutes has no label", p.Minutes)
		}
	}
	switch c.AlertStyle {
	case "alert", "notification":
	default:
		return fmt.Errorf("alert_style must be alert or notification, got %q", c.AlertStyle)
	}
	return nil
}
