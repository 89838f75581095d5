package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "GUIDEBOOK_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (GUIDEBOOK_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// GUIDEBOOK_GUIDES_DIR -> guides_dir, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogFormats = map[LogFormat]bool{
	LogFormatConsole: true,
	LogFormatJSON:    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.GuidesDir == "" {
		return fmt.Errorf("guides_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DefaultMode != "light" && c.DefaultMode != "dark" {
		return fmt.Errorf("invalid default_mode %q: must be light or dark", c.DefaultMode)
	}
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("session_secret must be at least 32 bytes")
	}
	if c.LogFormat != "" && !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format %q: must be console or json", c.LogFormat)
	}
	return nil
}

// DatabasePath is where the session database lives.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "guidebook.db")
}
