// Package config provides configuration management for the site generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"sitegen/internal/formatter"
	"sitegen/internal/models"
	"sitegen/internal/normalizer"
)

// Configuration validation errors.
var (
	ErrNoEnabledSources   = errors.New("at least one source must be enabled")
	ErrMissingInput       = errors.New("input is required")
	ErrMissingOutputDir   = errors.New("output_dir is required")
	ErrInvalidDelimiter   = errors.New("delimiter must be a single character")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'text' or 'json'")
	ErrUnsupportedFormat  = errors.New("unsupported config file extension")
	ErrEmptyHighlightName = errors.New("highlight names cannot be empty")
)

// Config represents the complete generator configuration.
type Config struct {
	Talks        SourceConfig   `yaml:"talks" toml:"talks"`
	Publications SourceConfig   `yaml:"publications" toml:"publications"`
	Logging      LoggingConfig  `yaml:"logging" toml:"logging"`
	Advanced     AdvancedConfig `yaml:"advanced" toml:"advanced"`
}

// SourceConfig describes one tabular input and where its documents go.
type SourceConfig struct {
	Input     string   `yaml:"input" toml:"input"`
	Delimiter string   `yaml:"delimiter" toml:"delimiter"`
	OutputDir string   `yaml:"output_dir" toml:"output_dir"`
	FilesDir  string   `yaml:"files_dir" toml:"files_dir"`
	LinkBase  string   `yaml:"link_base" toml:"link_base"`
	Highlight []string `yaml:"highlight" toml:"highlight"`
	Enabled   bool     `yaml:"enabled" toml:"enabled"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// AdvancedConfig contains run policy switches.
type AdvancedConfig struct {
	ContinueOnError bool `yaml:"continue_on_error" toml:"continue_on_error"`
	VerifyOutput    bool `yaml:"verify_output" toml:"verify_output"`
}

// Default returns the layout the generator has always used: talks from
// gen_conference/confs.csv and publications from gen_publication/pubs.csv.
func Default() *Config {
	return &Config{
		Talks: SourceConfig{
			Input:     "gen_conference/confs.csv",
			Delimiter: ";",
			OutputDir: "_talks",
			FilesDir:  "files/talks",
			LinkBase:  formatter.DefaultTalkLink,
			Highlight: slices.Clone(normalizer.DefaultTalkHighlights),
			Enabled:   true,
		},
		Publications: SourceConfig{
			Input:     "gen_publication/pubs.csv",
			Delimiter: ",",
			OutputDir: "_publications",
			Highlight: slices.Clone(normalizer.DefaultPublicationHighlights),
			Enabled:   true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML or TOML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration as YAML, or TOML when path ends in .toml.
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.Talks.Enabled && !c.Publications.Enabled {
		return ErrNoEnabledSources
	}

	for _, kind := range []models.Kind{models.KindTalk, models.KindPublication} {
		src := c.Source(kind)
		if !src.Enabled {
			continue
		}

		if err := src.Validate(); err != nil {
			return fmt.Errorf("%s: %w", kind.Collection(), err)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Validate checks a single source.
func (s *SourceConfig) Validate() error {
	if s.Input == "" {
		return ErrMissingInput
	}

	if s.OutputDir == "" {
		return ErrMissingOutputDir
	}

	if _, err := s.DelimiterRune(); err != nil {
		return err
	}

	for i, name := range s.Highlight {
		if name == "" {
			return fmt.Errorf("%w: highlight[%d]", ErrEmptyHighlightName, i)
		}
	}

	return nil
}

// DelimiterRune returns the field delimiter as a rune.
func (s *SourceConfig) DelimiterRune() (rune, error) {
	delim := s.Delimiter
	if delim == `\t` {
		delim = "\t"
	}

	if utf8.RuneCountInString(delim) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, s.Delimiter)
	}

	r, _ := utf8.DecodeRuneInString(delim)

	return r, nil
}

// Source returns the source configured for kind.
func (c *Config) Source(kind models.Kind) *SourceConfig {
	switch kind {
	case models.KindTalk:
		return &c.Talks
	case models.KindPublication:
		return &c.Publications
	default:
		return nil
	}
}

// EnabledKinds returns the kinds whose sources are enabled, talks first.
func (c *Config) EnabledKinds() []models.Kind {
	var kinds []models.Kind

	if c.Talks.Enabled {
		kinds = append(kinds, models.KindTalk)
	}

	if c.Publications.Enabled {
		kinds = append(kinds, models.KindPublication)
	}

	return kinds
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Talks: %s -> %s, Publications: %s -> %s, ContinueOnError: %t}",
		c.Talks.Input,
		c.Talks.OutputDir,
		c.Publications.Input,
		c.Publications.OutputDir,
		c.Advanced.ContinueOnError,
	)
}
