package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for every setting.
const envPrefix = "MARKOV"

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigParse        = errors.New("config file could not be parsed")
)

// keys lists every setting so AutomaticEnv can reach it during Unmarshal,
// which only sees keys viper already knows about.
var keys = []string{
	"domain.preset", "domain.max", "domain.draw_size",
	"model.pool_size", "model.workers", "model.rand_seed", "model.skip_invalid",
	"model.weights.direct", "model.weights.position", "model.weights.combination",
	"history.path",
	"store.backend", "store.dir", "store.redis.addr", "store.redis.password", "store.redis.db", "store.redis.prefix", "store.redis.ttl",
	"server.addr",
	"log.level",
}

// newViper builds a Viper instance reading YAML with MARKOV_ env overrides.
// Nested keys map "." to "_", so "store.redis.addr" is MARKOV_STORE_REDIS_ADDR.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	return v
}

// Load reads the YAML file at path, merges MARKOV_* overrides, applies defaults
// and validates. An empty path loads from the environment only.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromEnv()
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return finalize(v)
}

// LoadFromEnv builds a Config from MARKOV_* variables and defaults alone.
func LoadFromEnv() (*Config, error) {
	return finalize(newViper())
}

func finalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
