package config

import (
	"github.com/aretw0/markov/pkg/adapters/redis"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/generator"
	"github.com/aretw0/markov/pkg/scoring"
)

const (
	DefaultStoreBackend = StoreFile
	DefaultStoreDir     = ".markov/batches"
	DefaultRedisAddr    = "localhost:6379"
	DefaultServerAddr   = ":8080"
	DefaultLogLevel     = "info"
)

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields in place. Nil is a no-op.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Domain.Preset == "" {
		cfg.Domain.Preset = domain.DefaultDomain.Name
	}

	if cfg.Model.PoolSize == 0 {
		cfg.Model.PoolSize = generator.DefaultPoolSize
	}
	w := scoring.DefaultWeights
	if cfg.Model.Weights.Direct == 0 {
		cfg.Model.Weights.Direct = w.Direct
	}
	if cfg.Model.Weights.Position == 0 {
		cfg.Model.Weights.Position = w.Position
	}
	if cfg.Model.Weights.Combination == 0 {
		cfg.Model.Weights.Combination = w.Combination
	}

	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = DefaultStoreDir
	}
	if cfg.Store.Redis.Addr == "" {
		cfg.Store.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Store.Redis.Prefix == "" {
		cfg.Store.Redis.Prefix = redis.DefaultPrefix
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
