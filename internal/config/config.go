// Package config loads txf settings from defaults, an optional YAML file,
// a .env file and TXF_* environment variables, in increasing precedence.
// Command line flags bound into the same viper instance win over all of them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/txf/pkg/txf"
)

// EnvPrefix prefixes every environment override: TXF_PARSE_ENCODING → parse.encoding.
const EnvPrefix = "TXF"

// Config holds all application configuration.
type Config struct {
	Parse   ParseConfig   `mapstructure:"parse"`
	Load    LoadConfig    `mapstructure:"load"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ParseConfig struct {
	Encoding       string `mapstructure:"encoding"`
	MaxLineSize    int    `mapstructure:"max_line_size"`
	RejectTrailing bool   `mapstructure:"reject_trailing"`
}

type LoadConfig struct {
	Parallel   bool `mapstructure:"parallel"`
	Workers    int  `mapstructure:"workers"` // 0 = one per CPU
	SkipErrors bool `mapstructure:"skip_errors"`
}

type CacheConfig struct {
	MaxMemory int64 `mapstructure:"max_memory"` // bytes, 0 = unlimited
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type MetricsConfig struct {
	// Textfile is a node-exporter textfile path; empty disables the export
	Textfile string `mapstructure:"textfile"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("parse.encoding", txf.DefaultEncoding)
	v.SetDefault("parse.max_line_size", txf.DefaultMaxLineSize)
	v.SetDefault("parse.reject_trailing", false)
	v.SetDefault("load.parallel", true)
	v.SetDefault("load.workers", 0)
	v.SetDefault("load.skip_errors", true)
	v.SetDefault("cache.max_memory", 256*1024*1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("store.path", "./data/txf.db")
	v.SetDefault("metrics.textfile", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the configuration into a Config.
//
// If file is set it must exist. Otherwise txf.yaml is looked up in ".",
// "./configs" and "$HOME/.config/txf" and may be missing. A .env file in the
// working directory is loaded first; it never overrides variables that are
// already set.
func Load(v *viper.Viper, file string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("txf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "txf"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil // optional
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate checks that configuration values are sane.
func (c *Config) Validate() error {
	var errs []string

	if _, err := txf.EncodingName(c.Parse.Encoding); err != nil {
		errs = append(errs, fmt.Sprintf("parse.encoding: %v", err))
	}
	if c.Parse.MaxLineSize < 0 {
		errs = append(errs, fmt.Sprintf("parse.max_line_size must not be negative, got %d", c.Parse.MaxLineSize))
	}
	if c.Load.Workers < 0 {
		errs = append(errs, fmt.Sprintf("load.workers must not be negative, got %d", c.Load.Workers))
	}
	if c.Cache.MaxMemory < 0 {
		errs = append(errs, fmt.Sprintf("cache.max_memory must not be negative, got %d", c.Cache.MaxMemory))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ParseOptions returns the parser options for this configuration.
func (c *Config) ParseOptions() txf.ParseOptions {
	return txf.ParseOptions{
		Encoding:              c.Parse.Encoding,
		MaxLineSize:           c.Parse.MaxLineSize,
		RejectTrailingContent: c.Parse.RejectTrailing,
	}
}

// LoadOptions returns loader options for this configuration. Callbacks are
// left for the caller to set.
func (c *Config) LoadOptions(cache *txf.DocumentCache) txf.LoadOptions {
	return txf.LoadOptions{
		Parallel:     c.Load.Parallel,
		Workers:      c.Load.Workers,
		SkipErrors:   c.Load.SkipErrors,
		ParseOptions: c.ParseOptions(),
		Cache:        cache,
	}
}

// NewCache returns a document cache sized by cache.max_memory.
func (c *Config) NewCache() *txf.DocumentCache {
	return txf.NewDocumentCache(c.Cache.MaxMemory)
}
