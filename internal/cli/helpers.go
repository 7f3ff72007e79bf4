package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/markov/internal/logging"
	"github.com/aretw0/markov/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	once   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it remembers which signal arrived.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		sigCh:   make(chan os.Signal, 1),
	}
	sc.Cancel = func() {
		sc.once.Do(func() { signal.Stop(sc.sigCh) })
		cancel()
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
		case <-ctx.Done():
		}
		sc.Cancel()
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger builds the stderr logger for a configured level.
// An invalid level was already rejected by config validation, so it falls back to info.
func createLogger(level string) *slog.Logger {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return logging.New(lvl)
}

// createDebugHooks traces every lifecycle event at debug level.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTableBuilt: func(ctx context.Context, e *domain.TableEvent) {
			logger.Debug("Table Built", "draws", e.Draws, "skipped", e.Skipped, "empty", e.Empty)
		},
		OnSelect: func(ctx context.Context, e *domain.SelectionEvent) {
			if e.Fallback {
				logger.Debug("Select (Fallback)", "step", e.Step, "number", e.Number)
			} else {
				logger.Debug("Select", "step", e.Step, "number", e.Number, "score", e.Score)
			}
		},
		OnCombination: func(ctx context.Context, e *domain.CombinationEvent) {
			logger.Debug("Combination", "numbers", e.Numbers, "seed", e.Seed, "fallbacks", e.Fallbacks)
		},
	}
}
