// Package config loads the console's configuration file and environment
// overrides.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the conventional config location relative to the
// working directory.
const DefaultConfigFile = "console.yaml"

const (
	defaultAppName    = "schooltrack console"
	defaultAPIBaseURL = "http://127.0.0.1:8080"
	defaultAPITimeout = 20 * time.Second
	defaultListenAddr = ":9090"
	defaultLogLevel   = "info"
)

// APIConfig locates the attendance platform API.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"` // Go duration string, e.g. "20s"
}

// SessionConfig selects the session store backend. RedisAddr wins over Path
// when both are set.
type SessionConfig struct {
	Path      string `yaml:"path"`       // session file; empty means the per-user default
	RedisAddr string `yaml:"redis_addr"` // shared store for detached deployments
}

// LogConfig controls console logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the console's full configuration.
type Config struct {
	AppName string        `yaml:"app_name"`
	Listen  string        `yaml:"listen"`
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AppName: defaultAppName,
		Listen:  defaultListenAddr,
		API: APIConfig{
			BaseURL: defaultAPIBaseURL,
			Timeout: defaultAPITimeout.String(),
		},
		Log: LogConfig{Level: defaultLogLevel},
	}
}

// Load reads the config file at path, layering it over the defaults and
// applying environment overrides. A missing file is not an error; the
// defaults plus environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return Config{}, errors.Wrap(err, "[config.Load] read config file")
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(err, "[config.Load] parse config file")
		}
	}

	applyEnv(&cfg)

	if _, err := cfg.GetAPITimeout(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SCHOOLTRACK_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("SCHOOLTRACK_SESSION_PATH"); v != "" {
		cfg.Session.Path = v
	}
	if v := os.Getenv("SCHOOLTRACK_REDIS_ADDR"); v != "" {
		cfg.Session.RedisAddr = v
	}
	if v := os.Getenv("SCHOOLTRACK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SCHOOLTRACK_LISTEN"); v != "" {
		cfg.Listen = v
	}
}

// GetAPITimeout parses the configured request timeout.
func (c Config) GetAPITimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return defaultAPITimeout, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, errors.Wrapf(err, "[Config.GetAPITimeout] invalid timeout %q", c.API.Timeout)
	}
	return d, nil
}
