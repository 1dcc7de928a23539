// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/reoring/xsdform/field"
)

// Config is the root configuration structure.
type Config struct {
	Logging    LoggingConfig           `yaml:"logging"`
	Language   string                  `yaml:"language"` // "en" or "ja"
	ValueLists map[string][]ValueEntry `yaml:"value_lists"`
	Server     ServerConfig            `yaml:"server"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// ServerConfig configures the descriptor HTTP server.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ValueEntry is one entry of a named value list. In YAML it is either a
// plain scalar, used as both label and value, or a {label, value} mapping.
type ValueEntry struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// UnmarshalYAML accepts the scalar shorthand.
func (e *ValueEntry) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		e.Label, e.Value = n.Value, n.Value
		return nil
	}
	type plain ValueEntry
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*e = ValueEntry(p)
	if e.Label == "" {
		e.Label = e.Value
	}
	return nil
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse reads configuration from YAML bytes. Environment variables are
// expanded in the document and XSDFORM_* variables override its values.
func Parse(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg
}

// LoadWithFallback loads path when it exists and falls back to Default.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// applyEnvOverrides applies XSDFORM_* environment variables to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("XSDFORM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("XSDFORM_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("XSDFORM_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("XSDFORM_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10 * time.Second
	}
}

func validate(cfg *Config) error {
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level)); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}
	switch cfg.Language {
	case "en", "ja":
	default:
		return fmt.Errorf("language must be en or ja, got %q", cfg.Language)
	}
	for name, entries := range cfg.ValueLists {
		if len(entries) == 0 {
			return fmt.Errorf("value_lists.%s is empty", name)
		}
	}
	return nil
}

// Lists returns the configured value lists as a field list resolver.
func (c *Config) Lists() field.StaticLists {
	out := make(field.StaticLists, len(c.ValueLists))
	for name, entries := range c.ValueLists {
		list := make([]field.Entry, 0, len(entries))
		for _, e := range entries {
			list = append(list, field.Entry{Key: e.Label, Value: e.Value})
		}
		out[name] = list
	}
	return out
}

// Logger builds the logger described by the logging section, writing to w.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.Logging.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
