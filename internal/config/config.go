package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Units string

const (
	UnitsPounds Units = "lb"
	UnitsKilos  Units = "kg"
)

// Config holds application settings. File values are overridden by
// TRAINLOAD_* environment variables.
type Config struct {
	DBPath               string `yaml:"db_path"`
	CatalogPath          string `yaml:"catalog_path"`
	LogUseCases          bool   `yaml:"log_use_cases"`
	MinimumRehabSessions int    `yaml:"minimum_rehab_sessions"`
	DefaultHoldWeeks     int    `yaml:"default_hold_weeks"`
	Units                Units  `yaml:"units"`
}

// DefaultConfig stores data under ~/.trainload and uses the embedded catalog.
func DefaultConfig() Config {
	return Config{
		DBPath:               filepath.Join(homeDir(), ".trainload", "trainload.db"),
		LogUseCases:          false,
		MinimumRehabSessions: 6,
		DefaultHoldWeeks:     2,
		Units:                UnitsPounds,
	}
}

// Load reads a YAML file on top of the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfig resolves the config file, applies environment overrides and
// validates the result.
func LoadConfig() (Config, error) {
	path := os.Getenv("TRAINLOAD_CONFIG")
	if path == "" {
		path = filepath.Join(homeDir(), ".trainload", "config.yaml")
	}
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRAINLOAD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TRAINLOAD_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("TRAINLOAD_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TRAINLOAD_MIN_REHAB_SESSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinimumRehabSessions = n
		}
	}
	if v := os.Getenv("TRAINLOAD_DEFAULT_HOLD_WEEKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultHoldWeeks = n
		}
	}
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if c.MinimumRehabSessions <= 0 {
		return fmt.Errorf("%w: minimum_rehab_sessions must be positive, got %d", ErrInvalidConfig, c.MinimumRehabSessions)
	}
	if c.DefaultHoldWeeks <= 0 {
		return fmt.Errorf("%w: default_hold_weeks must be positive, got %d", ErrInvalidConfig, c.DefaultHoldWeeks)
	}
	if c.Units != UnitsPounds && c.Units != UnitsKilos {
		return fmt.Errorf("%w: units must be lb or kg, got %q", ErrInvalidConfig, c.Units)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
