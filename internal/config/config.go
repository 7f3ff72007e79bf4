// Package config loads CLI and server settings from YAML and MARKOV_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/markov/internal/logging"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/scoring"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Domain  DomainConfig  `mapstructure:"domain"`
	Model   ModelConfig   `mapstructure:"model"`
	History HistoryConfig `mapstructure:"history"`
	Store   StoreConfig   `mapstructure:"store"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// DomainConfig selects a preset and optionally overrides its bounds.
type DomainConfig struct {
	Preset   string `mapstructure:"preset"`
	Max      int    `mapstructure:"max"`
	DrawSize int    `mapstructure:"draw_size"`
}

// ModelConfig tunes table building and generation.
type ModelConfig struct {
	PoolSize    int    `mapstructure:"pool_size"`
	Workers     int    `mapstructure:"workers"`
	RandSeed    uint64 `mapstructure:"rand_seed"`
	SkipInvalid bool   `mapstructure:"skip_invalid"`
	// Weights left at zero take the default weight.
	Weights scoring.Weights `mapstructure:"weights"`
}

type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

type StoreConfig struct {
	Backend string      `mapstructure:"backend"`
	Dir     string      `mapstructure:"dir"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ResolveDomain returns the configured preset with any explicit overrides applied.
func (c *Config) ResolveDomain() (domain.Domain, error) {
	d, ok := domain.Preset(c.Domain.Preset)
	if !ok {
		if c.Domain.Max == 0 || c.Domain.DrawSize == 0 {
			return domain.Domain{}, fmt.Errorf("%w: unknown preset %q", domain.ErrInvalidDomain, c.Domain.Preset)
		}
		d = domain.Domain{Name: c.Domain.Preset}
	}
	if c.Domain.Max != 0 {
		d.Max = c.Domain.Max
	}
	if c.Domain.DrawSize != 0 {
		d.DrawSize = c.Domain.DrawSize
	}
	return d, d.Validate()
}

// Validate checks every section and joins all problems found.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.ResolveDomain(); err != nil {
		errs = append(errs, fmt.Errorf("domain: %w", err))
	}
	if c.Model.PoolSize < 1 {
		errs = append(errs, fmt.Errorf("model.pool_size must be positive, got %d", c.Model.PoolSize))
	}
	if c.Model.Workers < 0 {
		errs = append(errs, fmt.Errorf("model.workers must not be negative, got %d", c.Model.Workers))
	}
	if err := c.Model.Weights.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("model.weights: %w", err))
	}

	switch c.Store.Backend {
	case StoreMemory, StoreFile:
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required for the redis backend"))
		}
		if c.Store.Redis.TTL < 0 {
			errs = append(errs, fmt.Errorf("store.redis.ttl must not be negative, got %s", c.Store.Redis.TTL))
		}
	default:
		errs = append(errs, fmt.Errorf("store.backend %q is not one of memory, file, redis", c.Store.Backend))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}
