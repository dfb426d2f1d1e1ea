// Package config loads the tsdiag service configuration from a YAML file and
// TSDIAG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sartorproj/tsdiag/internal/logging"
)

var (
	ErrConfigFileNotFound = errors.New("config: file not found")
	ErrConfigParse        = errors.New("config: parse error")
	ErrConfigValidation   = errors.New("config: validation failed")
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Log     logging.Config `mapstructure:"log"`
	Cache   CacheConfig    `mapstructure:"cache"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
	Batch   BatchConfig    `mapstructure:"batch"`
}

// ServerConfig configures the REST server.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CacheConfig configures the Redis result cache.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	TTL       time.Duration `mapstructure:"ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// BatchConfig bounds batch requests.
type BatchConfig struct {
	Workers   int `mapstructure:"workers"`
	MaxModels int `mapstructure:"max_models"`
}

// Validate checks a fully defaulted Config and returns the first problem.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d is out of range [1, 65535]", ErrConfigValidation, c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: server.mode %q is invalid; expected debug|release|test", ErrConfigValidation, c.Server.Mode)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q is invalid; expected debug|info|warn|error", ErrConfigValidation, c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q is invalid; expected json|console", ErrConfigValidation, c.Log.Format)
	}

	if c.Cache.Enabled {
		if c.Cache.Addr == "" {
			return fmt.Errorf("%w: cache.addr is required when the cache is enabled", ErrConfigValidation)
		}
		if c.Cache.DB < 0 {
			return fmt.Errorf("%w: cache.db must be >= 0, got %d", ErrConfigValidation, c.Cache.DB)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("%w: cache.ttl must be positive, got %s", ErrConfigValidation, c.Cache.TTL)
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path %q must start with /", ErrConfigValidation, c.Metrics.Path)
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("%w: batch.workers must be >= 1, got %d", ErrConfigValidation, c.Batch.Workers)
	}
	if c.Batch.MaxModels < 1 {
		return fmt.Errorf("%w: batch.max_models must be >= 1, got %d", ErrConfigValidation, c.Batch.MaxModels)
	}
	return nil
}
