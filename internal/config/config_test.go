package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Parse.Encoding != "windows-1251" {
		t.Errorf("parse.encoding: got %q", cfg.Parse.Encoding)
	}
	if cfg.Parse.MaxLineSize != 1<<20 {
		t.Errorf("parse.max_line_size: got %d", cfg.Parse.MaxLineSize)
	}
	if !cfg.Load.Parallel || !cfg.Load.SkipErrors || cfg.Load.Workers != 0 {
		t.Errorf("unexpected load defaults: %+v", cfg.Load)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "txf.yaml")
	yaml := `parse:
  encoding: koi8-r
  reject_trailing: true
load:
  workers: 3
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TXF_LOG_FORMAT", "json")
	t.Setenv("TXF_LOAD_WORKERS", "5")

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Parse.Encoding != "koi8-r" || !cfg.Parse.RejectTrailing {
		t.Errorf("file values not applied: %+v", cfg.Parse)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level: got %q", cfg.Log.Level)
	}
	// environment wins over the file
	if cfg.Load.Workers != 5 || cfg.Log.Format != "json" {
		t.Errorf("env overrides not applied: workers=%d format=%q", cfg.Load.Workers, cfg.Log.Format)
	}

	opts := cfg.ParseOptions()
	if opts.Encoding != "koi8-r" || !opts.RejectTrailingContent {
		t.Errorf("ParseOptions: got %+v", opts)
	}
	lo := cfg.LoadOptions(nil)
	if lo.Workers != 5 || lo.ParseOptions != opts {
		t.Errorf("LoadOptions: got %+v", lo)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Parse: ParseConfig{Encoding: "utf-8"},
			Log:   LogConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad encoding", func(c *Config) { c.Parse.Encoding = "nope" }, "parse.encoding"},
		{"negative line size", func(c *Config) { c.Parse.MaxLineSize = -1 }, "parse.max_line_size"},
		{"negative workers", func(c *Config) { c.Load.Workers = -2 }, "load.workers"},
		{"negative cache", func(c *Config) { c.Cache.MaxMemory = -1 }, "cache.max_memory"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}
