package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/scoring"
	"github.com/aretw0/markov/pkg/table"
)

// State is the phase of a single combination's generation.
type State int

const (
	StateSeeded State = iota
	StateExpanding
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateSeeded:
		return "seeded"
	case StateExpanding:
		return "expanding"
	case StateComplete:
		return "complete"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Generator extends partial combinations to a target size.
//
// The table and scorer are shared read-only; the random source is not. A
// Generator must not be used from several goroutines at once: give each
// goroutine its own via WithRand, or use Batch.
type Generator struct {
	domain domain.Domain
	table  *table.Table
	scorer *scoring.Scorer
	rng    *rand.Rand
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand injects the random source used for seed defaulting and fallback picks.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// New creates a generator over t for domain d.
// Without WithRand the generator draws from a randomly seeded PCG source.
func New(d domain.Domain, t *table.Table, s *scoring.Scorer, opts ...Option) *Generator {
	g := &Generator{
		domain: d,
		table:  t,
		scorer: s,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// WithRand returns a copy of g drawing from r. The table, scorer, logger and
// hooks are shared with g.
func (g *Generator) WithRand(r *rand.Rand) *Generator {
	clone := *g
	clone.rng = r
	return &clone
}

// Domain returns the domain combinations are drawn from.
func (g *Generator) Domain() domain.Domain {
	return g.domain
}

// DefaultSeed returns the seed used when the caller supplies none: the number
// with the highest outgoing direct frequency, or a uniformly random number
// when the table has no transitions.
func (g *Generator) DefaultSeed() int {
	if n, ok := g.table.MostFrequent(); ok {
		return n
	}
	return g.rng.IntN(g.domain.Max) + 1
}

// Generate grows seed into a combination of targetSize numbers.
// An empty seed is replaced by DefaultSeed. It fails with an *ExhaustionError
// when targetSize exceeds the domain and never returns a short combination.
func (g *Generator) Generate(ctx context.Context, targetSize int, seed []int) (domain.Combination, error) {
	if err := g.checkTarget(targetSize); err != nil {
		return domain.Combination{}, err
	}
	if len(seed) > targetSize {
		return domain.Combination{}, fmt.Errorf("%w: %d seed numbers for a combination of %d", domain.ErrInvalidSeed, len(seed), targetSize)
	}
	if len(seed) == 0 {
		seed = []int{g.DefaultSeed()}
	}

	partial, err := domain.NewPartial(g.domain, seed)
	if err != nil {
		return domain.Combination{}, err
	}

	r := &run{g: g, target: targetSize, partial: partial, state: StateSeeded}
	return r.execute(ctx)
}

func (g *Generator) checkTarget(targetSize int) error {
	if targetSize < 1 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidTarget, targetSize)
	}
	if targetSize > g.domain.Max {
		return &ExhaustionError{Target: targetSize, Max: g.domain.Max}
	}
	return nil
}

// run is the state of one in-flight combination. It is owned by a single
// Generate call.
type run struct {
	g         *Generator
	target    int
	partial   *domain.Partial
	state     State
	fallbacks int
}

func (r *run) execute(ctx context.Context) (domain.Combination, error) {
	seed := r.partial.Numbers()

	for {
		switch r.state {
		case StateSeeded:
			r.state = StateExpanding

		case StateExpanding:
			if r.partial.Len() >= r.target {
				r.state = StateComplete
				continue
			}
			if err := ctx.Err(); err != nil {
				return domain.Combination{}, err
			}
			if err := r.step(ctx); err != nil {
				return domain.Combination{}, err
			}

		case StateComplete:
			c := r.partial.Complete()
			if r.g.hooks.OnCombination != nil {
				r.g.hooks.OnCombination(ctx, &domain.CombinationEvent{
					EventBase: domain.NewEventBase(domain.EventCombination),
					Numbers:   c.Numbers(),
					Seed:      seed,
					Fallbacks: r.fallbacks,
				})
			}
			return c, nil
		}
	}
}

// step appends one number to the partial combination.
func (r *run) step(ctx context.Context) error {
	unused := r.partial.Unused()
	if len(unused) == 0 {
		return &ExhaustionError{Target: r.target, Max: r.g.domain.Max, Have: r.partial.Len()}
	}

	existing := r.partial.Numbers()
	number, score, ok := PickHighestSmallest(unused, func(c int) float64 {
		return r.g.scorer.Score(c, existing)
	})

	fallback := !ok
	if fallback {
		number = unused[r.g.rng.IntN(len(unused))]
		score = 0
		r.fallbacks++
		r.g.logger.Debug("no positive candidate, falling back to random pick",
			"existing", existing, "picked", number)
	}

	if err := r.partial.Add(number); err != nil {
		return fmt.Errorf("failed to extend combination: %w", err)
	}

	if r.g.hooks.OnSelect != nil {
		r.g.hooks.OnSelect(ctx, &domain.SelectionEvent{
			EventBase: domain.NewEventBase(domain.EventSelect),
			Step:      r.partial.Len(),
			Number:    number,
			Score:     score,
			Fallback:  fallback,
		})
	}
	return nil
}

// PickHighestSmallest is the candidate selection policy: the candidate with
// the strictly highest positive score wins, and among equal scores the
// numerically smallest candidate wins. ok is false when no candidate scores
// above zero. The result does not depend on the order of candidates.
func PickHighestSmallest(candidates []int, score func(int) float64) (best int, bestScore float64, ok bool) {
	for _, c := range candidates {
		s := score(c)
		if s <= 0 {
			continue
		}
		if !ok || s > bestScore || (s == bestScore && c < best) {
			best, bestScore, ok = c, s, true
		}
	}
	return best, bestScore, ok
}
