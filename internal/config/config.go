// Package config loads the harness configuration (askygg.yaml): toolchain,
// layout, logging and metrics settings. The target program's own settings
// file is handled by the settings package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/askygg/internal/layout"
	"git.home.luguber.info/inful/askygg/internal/profile"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "askygg.yaml"

// ErrNotFound indicates an explicitly requested config file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// Config represents the harness configuration.
type Config struct {
	AppName   string            `yaml:"app_name"`
	RootDir   string            `yaml:"root_dir"`
	Toolchain profile.Toolchain `yaml:"toolchain"`
	Logging   LoggingConfig     `yaml:"logging"`
	Metrics   MetricsConfig     `yaml:"metrics"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration at path; a missing file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parse(data)
}

// LoadOptional behaves like Load but falls back to Default when path does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		slog.Debug("No configuration file, using defaults", "path", path)
		return Default(), nil
	}
	return cfg, err
}

func parse(data []byte) (*Config, error) {
	expanded := expandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} with the value of VAR when it is set. Bare $VAR
// and references to unset variables are left verbatim, so toolchain
// arguments such as -DCMAKE_INSTALL_RPATH=$ORIGIN/../lib survive.
func expandEnv(s string) string {
	return envReference.ReplaceAllStringFunc(s, func(ref string) string {
		if v, ok := os.LookupEnv(ref[2 : len(ref)-1]); ok {
			return v
		}
		return ref
	})
}

func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = layout.DefaultAppName
	}
	c.Toolchain = c.Toolchain.WithDefaults()
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}

func (c *Config) normalize() error {
	if c.Logging.Level != "" {
		level, err := ParseLogLevel(string(c.Logging.Level))
		if err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
		c.Logging.Level = level
	}
	if c.Logging.Format != "" {
		format, err := ParseLogFormat(string(c.Logging.Format))
		if err != nil {
			return fmt.Errorf("logging.format: %w", err)
		}
		c.Logging.Format = format
	}
	return nil
}

// LoadEnvFiles loads .env then .env.local from the working directory when
// present. Variables already set in the process environment win. It must run
// before flags are parsed so ASKYGG_* flag variables can come from .env.
func LoadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load environment file", "path", envPath, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", envPath)
	}
}
