// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML settings used by the command line tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvLogLevel overrides Log.Level when set.
const EnvLogLevel = "LIME_LOG_LEVEL"

// Decoder modes accepted by decoder.mode.
const (
	ModeStream = "stream"
	ModeBuffer = "buffer"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// DecoderConfig selects how files are decoded.
type DecoderConfig struct {
	IgnorePadding bool   `yaml:"ignore_padding"`
	Mode          string `yaml:"mode"`
}

// LogConfig controls the level and the optional rotating log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"` // megabytes
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
	Compress   bool   `yaml:"compress"`
}

// Config is the root of the YAML file.
type Config struct {
	Decoder DecoderConfig `yaml:"decoder"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Decoder: DecoderConfig{Mode: ModeStream},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// The environment is applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if level, ok := os.LookupEnv(EnvLogLevel); ok && level != "" {
		c.Log.Level = level
	}
}

// Validate reports settings no component can act on.
func (c *Config) Validate() error {
	c.Decoder.Mode = strings.ToLower(strings.TrimSpace(c.Decoder.Mode))
	switch c.Decoder.Mode {
	case "":
		c.Decoder.Mode = ModeStream
	case ModeStream, ModeBuffer:
	default:
		return fmt.Errorf("%w: decoder.mode %q, want %q or %q", ErrInvalidConfig, c.Decoder.Mode, ModeStream, ModeBuffer)
	}

	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalidConfig)
	}
	return nil
}
