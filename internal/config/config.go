// Package config loads client configuration from ~/.encore/config.yaml with
// ENCORE_-prefixed environment overrides. Every field has a working default
// so the binary runs with no file present.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL selects the backend origin when nothing is configured.
	DefaultBaseURL = "http://127.0.0.1:8080"
	// DefaultTimeout bounds every backend call.
	DefaultTimeout = 30 * time.Second

	envPrefix = "ENCORE_"
)

// Config holds all client settings.
type Config struct {
	API struct {
		BaseURL string        `koanf:"baseurl"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"api"`

	Log struct {
		Level  string `koanf:"level"`
		Pretty bool   `koanf:"pretty"`
	} `koanf:"log"`
}

// Dir returns the client's state directory (~/.encore).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "get home dir")
	}
	return filepath.Join(home, ".encore"), nil
}

// Load reads the config file at path (skipped when absent), then applies
// ENCORE_ env overrides, e.g. ENCORE_API_BASEURL=https://api.encore.fan.
func Load(path string) (*Config, error) {
	cfg := defaults()
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// ENCORE_API_BASEURL -> api.baseurl
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env overrides")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: false}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	applyDefaults(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
