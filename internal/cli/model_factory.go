package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/adapters/memory"
	"github.com/aretw0/markov/pkg/adapters/redis"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/draw"
	"github.com/aretw0/markov/pkg/ports"
)

// ErrNoHistory is returned when no history file is configured.
var ErrNoHistory = errors.New("no history file configured (set --history or history.path)")

// modelOptions translates configuration into model options.
func modelOptions(cfg *config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) ([]markov.Option, error) {
	d, err := cfg.ResolveDomain()
	if err != nil {
		return nil, err
	}
	opts := []markov.Option{
		markov.WithDomain(d),
		markov.WithLogger(logger),
		markov.WithHooks(hooks),
		markov.WithPoolSize(cfg.Model.PoolSize),
		markov.WithWorkers(cfg.Model.Workers),
		markov.WithSkipInvalid(cfg.Model.SkipInvalid),
		markov.WithWeights(cfg.Model.Weights),
	}
	if cfg.Model.RandSeed != 0 {
		opts = append(opts, markov.WithSeed(cfg.Model.RandSeed))
	}
	return opts, nil
}

// historySource picks the loader for the configured history path.
func historySource(cfg *config.Config) (ports.HistorySource, error) {
	if cfg.History.Path == "" {
		return nil, ErrNoHistory
	}
	return file.NewHistoryLoader(cfg.History.Path), nil
}

// loadHistory reads every raw record from the configured source.
func loadHistory(ctx context.Context, cfg *config.Config) ([]draw.Record, error) {
	src, err := historySource(cfg)
	if err != nil {
		return nil, err
	}
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return records, nil
}

// createModel loads history and builds a model with standard CLI conventions.
func createModel(ctx context.Context, cfg *config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*markov.Model, error) {
	records, err := loadHistory(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts, err := modelOptions(cfg, logger, hooks)
	if err != nil {
		return nil, err
	}
	m, err := markov.Build(ctx, records, opts...)
	if err != nil {
		return nil, fmt.Errorf("error building model: %w", err)
	}
	return m, nil
}

// openStore returns the configured combination store and a function releasing it.
func openStore(cfg *config.Config) (ports.CombinationStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return memory.NewStore(), noop, nil
	case config.StoreFile:
		return file.NewStore(cfg.Store.Dir), noop, nil
	case config.StoreRedis:
		s := redis.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB,
			redis.WithPrefix(cfg.Store.Redis.Prefix),
			redis.WithTTL(cfg.Store.Redis.TTL),
		)
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
