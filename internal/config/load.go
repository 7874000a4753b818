package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file searched for in the
// working directory and the config directory.
const FileName = "mdxtool.yaml"

// Flags holds command-line overrides. Zero values leave the loaded setting
// unchanged.
type Flags struct {
	Debug    bool
	LogLevel string
	LogFile  string
	Codec    string
	Limit    string
}

// Load loads configuration with priority: defaults < file < flags. If path is
// empty, the file is searched for in the working directory, then in
// ConfigDir. Returns the path of the file that was loaded, or an empty string
// if none was found.
func Load(path string, flags Flags) (cfg *Config, loaded string, err error) {
	cfg = Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, "", fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if err := applyFlags(cfg, flags); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func findConfigFile() string {
	candidates := []string{
		FileName,
		filepath.Join(ConfigDir(), FileName),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "mdxtool")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "mdxtool")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "mdxtool")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "mdxtool")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyFlags(cfg *Config, flags Flags) error {
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}
	if flags.Debug {
		cfg.Logging.Level = "debug"
	}
	if flags.LogFile != "" {
		cfg.Logging.File = flags.LogFile
	}
	if flags.Codec != "" {
		if err := cfg.Pack.Codec.UnmarshalText([]byte(flags.Codec)); err != nil {
			return err
		}
	}
	if flags.Limit != "" {
		cfg.Limits.MaxUnpackedSize = flags.Limit
	}
	return nil
}
