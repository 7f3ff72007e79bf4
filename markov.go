package markov

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/draw"
	"github.com/aretw0/markov/pkg/evaluate"
	"github.com/aretw0/markov/pkg/generator"
	"github.com/aretw0/markov/pkg/scoring"
	"github.com/aretw0/markov/pkg/table"
)

// Model is a built transition table together with the scorer, generator and
// batch producer that read it.
//
// The table is immutable once built. Generation draws from a single random
// source guarded by the model, so a Model may be shared between goroutines.
type Model struct {
	domain    domain.Domain
	table     *table.Table
	report    *table.Report
	scorer    *scoring.Scorer
	generator *generator.Generator
	batch     *generator.Batch

	mu       sync.Mutex
	randSeed uint64
}

type config struct {
	domain      domain.Domain
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	rng         *rand.Rand
	seed        uint64
	seeded      bool
	poolSize    int
	workers     int
	skipInvalid bool
	weights     scoring.Weights
}

// Option configures a Model.
type Option func(*config)

// WithDomain sets the number domain. It defaults to domain.DefaultDomain.
func WithDomain(d domain.Domain) Option {
	return func(c *config) {
		c.domain = d
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithRand injects the random source. It takes precedence over WithSeed.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithSeed makes generation reproducible: two models built from the same
// history with the same seed produce the same combinations.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithPoolSize sets how many top-ranked numbers seed a batch.
func WithPoolSize(n int) Option {
	return func(c *config) {
		c.poolSize = n
	}
}

// WithWorkers sets how many combinations a batch generates concurrently.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithSkipInvalid skips malformed records instead of failing the build.
// Skipped records are listed in Report.
func WithSkipInvalid(skip bool) Option {
	return func(c *config) {
		c.skipInvalid = skip
	}
}

// WithWeights overrides the scoring weights.
func WithWeights(w scoring.Weights) Option {
	return func(c *config) {
		c.weights = w
	}
}

func newConfig(opts []Option) (config, error) {
	c := config{
		domain:   domain.DefaultDomain,
		poolSize: generator.DefaultPoolSize,
		workers:  1,
		weights:  scoring.DefaultWeights,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := c.domain.Validate(); err != nil {
		return c, err
	}
	if err := c.weights.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// New builds a model from raw history records.
func New(records []draw.Record, opts ...Option) (*Model, error) {
	return Build(context.Background(), records, opts...)
}

// Build is New with a context passed to lifecycle hooks.
func Build(ctx context.Context, records []draw.Record, opts ...Option) (*Model, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	policy := table.FailFast
	if cfg.skipInvalid {
		policy = table.SkipAndCount
	}
	builder := table.NewBuilder(
		table.WithLogger(cfg.logger),
		table.WithHooks(cfg.hooks),
		table.WithPolicy(policy),
	)

	t, report, err := builder.BuildRecords(ctx, records, draw.NewNormalizer(cfg.domain))
	if err != nil {
		return nil, err
	}
	return assemble(cfg, t, report), nil
}

// FromDraws builds a model from draws that are already normalized. Each draw
// is checked again against the model's domain.
func FromDraws(ctx context.Context, draws []domain.Draw, opts ...Option) (*Model, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	for i, d := range draws {
		if _, err := domain.NewDraw(cfg.domain, d.Numbers()); err != nil {
			return nil, fmt.Errorf("draw %d: %w", i, err)
		}
	}

	builder := table.NewBuilder(table.WithLogger(cfg.logger), table.WithHooks(cfg.hooks))
	t := builder.Build(ctx, draws)
	return assemble(cfg, t, &table.Report{Accepted: len(draws)}), nil
}

func assemble(cfg config, t *table.Table, report *table.Report) *Model {
	m := &Model{domain: cfg.domain, table: t, report: report}

	rng := cfg.rng
	if rng == nil {
		if !cfg.seeded {
			cfg.seed = rand.Uint64()
		}
		m.randSeed = cfg.seed
		rng = rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	}

	m.scorer = scoring.NewScorer(t, cfg.weights)
	m.generator = generator.New(cfg.domain, t, m.scorer,
		generator.WithRand(rng),
		generator.WithLogger(cfg.logger),
		generator.WithHooks(cfg.hooks),
	)
	m.batch = generator.NewBatch(m.generator,
		generator.WithPoolSize(cfg.poolSize),
		generator.WithWorkers(cfg.workers),
	)
	return m
}

// Domain returns the number domain.
func (m *Model) Domain() domain.Domain {
	return m.domain
}

// Table returns the transition table. Callers must not mutate it.
func (m *Model) Table() *table.Table {
	return m.table
}

// Report returns what the build accepted and skipped.
func (m *Model) Report() *table.Report {
	return m.report
}

// EmptyHistory reports whether no draw contributed transitions.
func (m *Model) EmptyHistory() bool {
	return m.table.Empty()
}

// RandSeed returns the seed of the model's random source, or zero when the
// source was injected with WithRand.
func (m *Model) RandSeed() uint64 {
	return m.randSeed
}

// Score rates candidate as the next number after existing.
func (m *Model) Score(candidate int, existing []int) float64 {
	return m.scorer.Score(candidate, existing)
}

// Breakdown returns the unweighted per-level evidence behind Score.
func (m *Model) Breakdown(candidate int, existing []int) scoring.Breakdown {
	return m.scorer.Breakdown(candidate, existing)
}

// Generate grows seed into a combination of targetSize numbers. Without seed
// numbers it starts from the most frequent predecessor.
func (m *Model) Generate(ctx context.Context, targetSize int, seed ...int) (domain.Combination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generator.Generate(ctx, targetSize, seed)
}

// GenerateMany returns n combinations seeded from the batch pool.
func (m *Model) GenerateMany(ctx context.Context, n, targetSize int) ([]domain.Combination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batch.GenerateMany(ctx, n, targetSize)
}

// NewBatch generates n combinations and wraps them for a CombinationStore.
// The batch records the model's construction seed, not a per-batch seed: a
// batch is reproduced by rebuilding the model with that seed and replaying
// the same calls in order.
func (m *Model) NewBatch(ctx context.Context, id string, n, targetSize int) (domain.Batch, error) {
	combos, err := m.GenerateMany(ctx, n, targetSize)
	if err != nil {
		return domain.Batch{}, err
	}
	return domain.Batch{
		ID:           id,
		CreatedAt:    time.Now().UTC(),
		Domain:       m.domain,
		TargetSize:   targetSize,
		RandSeed:     m.randSeed,
		Combinations: combos,
	}, nil
}

// Pool returns the numbers batch generation cycles through as seeds.
func (m *Model) Pool() []int {
	return m.batch.Pool()
}

// Transitions returns every recorded successor of number.
func (m *Model) Transitions(number int) table.Snapshot {
	return m.table.Snapshot(number)
}

// MostLikelyNext returns the most frequent successor of number at level.
func (m *Model) MostLikelyNext(number int, level table.Level) (int, bool) {
	return m.table.MostLikelyNext(number, level)
}

// Trainer returns an evaluate.Trainer building models with opts.
func Trainer(opts ...Option) evaluate.Trainer {
	return func(ctx context.Context, train []draw.Record) (evaluate.Producer, error) {
		return Build(ctx, train, opts...)
	}
}
