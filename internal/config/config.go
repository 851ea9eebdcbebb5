package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DOCBUNDLE_"

// maxYearSpan bounds the holiday table embedded in a bundle.
const maxYearSpan = 200

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCBUNDLE_*). A .env file next to the
// config file is loaded into the environment first. Nested keys use a
// double underscore: DOCBUNDLE_MASK__HEADING -> mask.heading.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps DOCBUNDLE_WIDGETS__YEARS_AFTER to widgets.years_after.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// loadDotEnv loads a .env file if present. Variables already set in the
// environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validOrders = map[Order]bool{
	OrderAsc:  true,
	OrderDesc: true,
}

var validEncodings = map[Encoding]bool{
	EncodingUTF8:     true,
	EncodingShiftJIS: true,
	EncodingEUCJP:    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DocsDir == "" {
		return fmt.Errorf("docs_dir is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}

	if !validOrders[c.Order] {
		return fmt.Errorf("invalid order %q: must be asc or desc", c.Order)
	}

	if !validEncodings[c.Encoding] {
		return fmt.Errorf("invalid encoding %q: must be one of utf-8, shift_jis, euc-jp", c.Encoding)
	}

	if c.Mask.Enabled {
		if strings.TrimSpace(c.Mask.Heading) == "" {
			return fmt.Errorf("mask.heading is required when masking is enabled")
		}
		if c.Mask.MaxLength < 1 {
			return fmt.Errorf("mask.max_length must be at least 1")
		}
	}

	if c.Widgets.YearsBefore < 0 || c.Widgets.YearsAfter < 0 {
		return fmt.Errorf("widgets.years_before and widgets.years_after must be non-negative")
	}
	if c.Widgets.YearsBefore+c.Widgets.YearsAfter > maxYearSpan {
		return fmt.Errorf("widgets year span must not exceed %d years", maxYearSpan)
	}

	return nil
}
