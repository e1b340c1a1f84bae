// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Owner    OwnerConfig    `toml:"owner"`
	Time     TimeConfig     `toml:"time"`
	Blocks   BlocksConfig   `toml:"blocks"`
	Schedule ScheduleConfig `toml:"schedule"`
	Log      LogConfig      `toml:"log"`
	UI       UIConfig       `toml:"ui"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// OwnerConfig selects the owner whose time blocks the CLI works on.
type OwnerConfig struct {
	Name string `toml:"name"`
}

// TimeConfig holds the wall-clock settings.
type TimeConfig struct {
	Timezone string `toml:"timezone"` // IANA name, or "Local"
}

// BlocksConfig holds time block rules.
type BlocksConfig struct {
	RejectOverlaps bool `toml:"reject_overlaps"`
}

// ScheduleConfig holds the working hours free slots are searched in.
type ScheduleConfig struct {
	Workdays []string `toml:"workdays"`  // e.g., ["monday", "tuesday", ...]
	DayStart string   `toml:"day_start"` // e.g., "09:00"
	DayEnd   string   `toml:"day_end"`   // e.g., "17:00"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text" or "json"
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	Color string `toml:"color"` // "auto", "always", "never"
	Theme string `toml:"theme"` // built-in theme name or path to a theme .toml file
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Owner: OwnerConfig{
			Name: defaultOwner(),
		},
		Time: TimeConfig{
			Timezone: "Local",
		},
		Schedule: ScheduleConfig{
			Workdays: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			DayStart: "09:00",
			DayEnd:   "17:00",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		UI: UIConfig{
			Color: "auto",
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "focusflow.db"
	}
	return filepath.Join(home, ".local", "share", "focusflow", "focusflow.db")
}

func defaultOwner() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "focusflow", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("FOCUSFLOW_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("FOCUSFLOW_OWNER"); v != "" {
		cfg.Owner.Name = v
	}
	if v := os.Getenv("FOCUSFLOW_TIMEZONE"); v != "" {
		cfg.Time.Timezone = v
	}
	if v := os.Getenv("FOCUSFLOW_REJECT_OVERLAPS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FOCUSFLOW_REJECT_OVERLAPS: %w", err)
		}
		cfg.Blocks.RejectOverlaps = b
	}
	if v := os.Getenv("FOCUSFLOW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FOCUSFLOW_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FOCUSFLOW_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("FOCUSFLOW_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("FOCUSFLOW_WORKDAYS"); v != "" {
		cfg.Schedule.Workdays = strings.Split(v, ",")
	}
	if v := os.Getenv("FOCUSFLOW_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if strings.TrimSpace(c.Owner.Name) == "" {
		return errors.New("owner name must be set")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if err := c.validateSchedule(); err != nil {
		return err
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	if !validColors[strings.ToLower(c.UI.Color)] {
		return fmt.Errorf("invalid color mode: %s", c.UI.Color)
	}
	return nil
}

func (c *Config) validateSchedule() error {
	if err := validateClock(c.Schedule.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateClock(c.Schedule.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Schedule.DayStart >= c.Schedule.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if len(c.Schedule.Workdays) == 0 {
		return errors.New("at least one workday must be configured")
	}
	for _, day := range c.Schedule.Workdays {
		if !validWeekdays[strings.ToLower(strings.TrimSpace(day))] {
			return fmt.Errorf("invalid workday: %s", day)
		}
	}
	return nil
}

// validateClock checks that t is a zero-padded "HH:MM" wall-clock time.
func validateClock(t, field string) error {
	if _, err := time.Parse("15:04", t); err != nil || len(t) != 5 {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

var (
	validWeekdays = map[string]bool{
		"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
		"friday": true, "saturday": true, "sunday": true,
	}
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"text": true, "json": true}
	validColors  = map[string]bool{"auto": true, "always": true, "never": true}
)

// Location returns the configured time zone. An empty value or "Local"
// selects the system zone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Time.Timezone)
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
