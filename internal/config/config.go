// Package config loads qtermsim settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config contains all qtermsim settings.
type Config struct {
	// Seed fixes measurement randomness. Zero means seed from the clock.
	Seed int64 `yaml:"seed"`

	// MaxQubits caps the register width the CLI and TUI will build. The
	// full operator of an n-qubit gate has 4^n entries.
	MaxQubits int `yaml:"max_qubits"`

	// Precision is the number of decimals printed for amplitudes.
	Precision int `yaml:"precision"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	TUI TUIConfig `yaml:"tui"`
}

// TUIConfig contains terminal UI settings.
type TUIConfig struct {
	Qubits int    `yaml:"qubits"`
	File   string `yaml:"file"`
	Watch  bool   `yaml:"watch"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Seed:      0,
		MaxQubits: 10,
		Precision: 4,
		LogLevel:  "warn",
		TUI: TUIConfig{
			Qubits: 3,
			File:   "circuit.qasm",
		},
	}
}

// Load builds the configuration with priority: env > file > defaults. An
// empty or missing path leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	loadEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("QTERMSIM_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = i
		}
	}
	if v := os.Getenv("QTERMSIM_MAX_QUBITS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.MaxQubits = i
		}
	}
	if v := os.Getenv("QTERMSIM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.MaxQubits < 1 {
		return fmt.Errorf("max_qubits must be >= 1")
	}
	if c.Precision < 0 || c.Precision > 15 {
		return fmt.Errorf("precision must be between 0 and 15")
	}
	if c.TUI.Qubits < 1 || c.TUI.Qubits > c.MaxQubits {
		return fmt.Errorf("tui.qubits must be between 1 and max_qubits (%d)", c.MaxQubits)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level converts LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
