// Package config handles the loading and saving of mdxtool configuration.
package config

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/mdxapi/mdxfile"
	"github.com/mdxapi/mdxfile/internal/logger"
)

// Config holds all mdxtool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Pack    PackConfig    `yaml:"pack"`
	Limits  LimitsConfig  `yaml:"limits"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// PackConfig holds settings for writing packed files.
type PackConfig struct {
	// Codec is the codec used by the pack command when none is given.
	Codec mdxfile.Codec `yaml:"codec"`
}

// LimitsConfig holds limits applied to input files.
type LimitsConfig struct {
	// MaxUnpackedSize is the largest size a packed file may unpack to, as a
	// human-readable size such as "256 MiB".
	MaxUnpackedSize string `yaml:"max_unpacked_size"`
}

// Default returns a Config with default values.
func Default() *Config {
	fc := logger.DefaultFileConfig("")
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  fc.MaxSizeMB,
			MaxBackups: fc.MaxBackups,
			MaxAgeDays: fc.MaxAgeDays,
			Compress:   fc.Compress,
		},
		Pack: PackConfig{
			Codec: mdxfile.CodecZstd,
		},
		Limits: LimitsConfig{
			MaxUnpackedSize: humanize.IBytes(mdxfile.DefaultUnpackLimit),
		},
	}
}

// UnpackLimit returns MaxUnpackedSize in bytes.
func (c *Config) UnpackLimit() (uint64, error) {
	if c.Limits.MaxUnpackedSize == "" {
		return mdxfile.DefaultUnpackLimit, nil
	}
	n, err := humanize.ParseBytes(c.Limits.MaxUnpackedSize)
	if err != nil {
		return 0, fmt.Errorf("limits.max_unpacked_size: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("limits.max_unpacked_size: must be greater than zero")
	}
	return n, nil
}

// FileConfig returns the file logging configuration.
func (c *Config) FileConfig() logger.FileConfig {
	return logger.FileConfig{
		Path:       c.Logging.File,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   c.Logging.Compress,
	}
}

// Validate returns an error if any setting is invalid.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := c.UnpackLimit(); err != nil {
		return err
	}
	return nil
}
