// Package config loads matex settings from defaults, matex.yaml, MATEX_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Sources a dataset can be loaded from.
const (
	SourceSynthetic = "synthetic"
	SourceSQLite    = "sqlite"
)

// Defaults.
const (
	DefaultSource   = SourceSynthetic
	DefaultDB       = "matex.db"
	DefaultRows     = 100
	DefaultCacheKey = "default"
	DefaultFormat   = "text"
	DefaultLimit    = 10
)

// EnvPrefix prefixes every environment variable read: MATEX_SOURCE → source.
const EnvPrefix = "MATEX_"

// ConfigFileNames are searched in the working directory when no config
// file is given explicitly.
var ConfigFileNames = []string{"matex.yaml", "matex.yml"}

// Config holds the resolved settings.
type Config struct {
	// Source is where tables come from: "synthetic" or "sqlite".
	Source string `koanf:"source"`

	// DB is the SQLite database path for the sqlite source and seed.
	DB string `koanf:"db"`

	// Seed seeds the synthetic generator; 0 means random.
	Seed uint64 `koanf:"seed"`

	// Rows is the synthetic table size.
	Rows int `koanf:"rows"`

	// CacheKey selects the dataset cache entry.
	CacheKey string `koanf:"cache_key"`

	// Format is the output format: "text" or "json".
	Format string `koanf:"format"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// Limit is the number of preview rows printed by filter.
	Limit int `koanf:"limit"`

	// PresetDir is searched for presets referenced by bare name.
	PresetDir string `koanf:"preset_dir"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// Load resolves configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags the user actually set override lower layers. cfgFile may be
// empty, in which case matex.yaml or matex.yml in the working directory is
// used when present.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"source":     DefaultSource,
		"db":         DefaultDB,
		"seed":       0,
		"rows":       DefaultRows,
		"cache_key":  DefaultCacheKey,
		"format":     DefaultFormat,
		"verbose":    false,
		"limit":      DefaultLimit,
		"preset_dir": "",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: MATEX_CACHE_KEY -> cache_key
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns the explicit path, or the first default config
// file present in the working directory, or "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Validate checks the resolved settings.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceSynthetic, SourceSQLite:
	default:
		return fmt.Errorf("invalid source %q: must be %q or %q", c.Source, SourceSynthetic, SourceSQLite)
	}
	if c.Source == SourceSQLite && c.DB == "" {
		return fmt.Errorf("source %q requires a database path", SourceSQLite)
	}
	if c.Rows < 0 {
		return fmt.Errorf("rows must not be negative, got %d", c.Rows)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", c.Limit)
	}
	if c.CacheKey == "" {
		return fmt.Errorf("cache key must not be empty")
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", c.Format)
	}
	return nil
}
