package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the CLI and the HTTP service.
// Zero values mean "unspecified" and will be replaced by defaults.
type Config struct {
	Addr         string   `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir    string   `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	LogLevel     string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat    string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORSEnabled  bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	Strict       bool     `json:"strict" yaml:"strict" toml:"strict"`
}

const (
	DefaultAddr         = ":8080"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultMaxBodyBytes = int64(1 << 20)
)

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv returns a Config filled from EVALMODELS_* variables.
func FromEnv() Config {
	var cfg Config
	cfg.Addr = os.Getenv("EVALMODELS_ADDR")
	cfg.ModelsDir = os.Getenv("EVALMODELS_MODELS_DIR")
	cfg.LogLevel = os.Getenv("EVALMODELS_LOG_LEVEL")
	cfg.LogFormat = os.Getenv("EVALMODELS_LOG_FORMAT")
	if v := os.Getenv("EVALMODELS_MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxBodyBytes = n
		}
	}
	if v := os.Getenv("EVALMODELS_CORS_ORIGINS"); v != "" {
		cfg.CORSEnabled = true
		cfg.CORSOrigins = SplitCSV(v)
	}
	cfg.Strict = envBool("EVALMODELS_STRICT")
	return cfg
}

// Merge returns base with every non-zero field of over applied on top.
func Merge(base, over Config) Config {
	if over.Addr != "" {
		base.Addr = over.Addr
	}
	if over.ModelsDir != "" {
		base.ModelsDir = over.ModelsDir
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.LogFormat != "" {
		base.LogFormat = over.LogFormat
	}
	if over.MaxBodyBytes > 0 {
		base.MaxBodyBytes = over.MaxBodyBytes
	}
	if over.CORSEnabled {
		base.CORSEnabled = true
	}
	if len(over.CORSOrigins) > 0 {
		base.CORSOrigins = append([]string(nil), over.CORSOrigins...)
	}
	if over.Strict {
		base.Strict = true
	}
	return base
}

// WithDefaults fills unspecified fields.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}

// SplitCSV splits a comma-separated list, trimming blanks.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envBool(key string) bool {
	s := strings.ToLower(os.Getenv(key))
	return s == "1" || s == "true" || s == "yes"
}
