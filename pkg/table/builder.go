package table

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/draw"
)

// Policy decides what the builder does with records that fail normalization.
type Policy int

const (
	// FailFast aborts the build at the first invalid record.
	FailFast Policy = iota
	// SkipAndCount drops invalid records and reports them in the Report.
	SkipAndCount
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case SkipAndCount:
		return "skip_and_count"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Report summarizes a build from raw records.
type Report struct {
	Accepted int
	Skipped  int
	Failures []error
}

// Err joins every skipped-record failure, or returns nil.
func (r *Report) Err() error {
	return errors.Join(r.Failures...)
}

// Builder constructs transition tables.
type Builder struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	policy Policy
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) BuilderOption {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// WithPolicy sets the invalid-record policy (default FailFast).
func WithPolicy(p Policy) BuilderOption {
	return func(b *Builder) {
		b.policy = p
	}
}

// NewBuilder creates a table builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build aggregates draws into a new Table.
func (b *Builder) Build(ctx context.Context, draws []domain.Draw) *Table {
	t := New()
	for _, d := range draws {
		add(t, d)
	}
	b.finish(ctx, t, 0)
	return t
}

// BuildRecords normalizes records and aggregates the valid ones.
// Under FailFast the first invalid record aborts the build and the error
// carries the record's position and identity.
func (b *Builder) BuildRecords(ctx context.Context, records []draw.Record, n *draw.Normalizer) (*Table, *Report, error) {
	t := New()
	report := &Report{}

	for i, rec := range records {
		d, err := n.Normalize(rec)
		if err != nil {
			err = fmt.Errorf("record %d: %w", i, err)
			if b.policy == FailFast {
				return nil, report, err
			}
			b.logger.Warn("skipping invalid record", "index", i, "record", rec.Label(), "err", err)
			report.Skipped++
			report.Failures = append(report.Failures, err)
			continue
		}
		add(t, d)
		report.Accepted++
	}

	b.finish(ctx, t, report.Skipped)
	return t, report, nil
}

func add(t *Table, d domain.Draw) {
	k := d.Len()

	// 1. Direct: adjacent numbers
	for i := 0; i+1 < k; i++ {
		t.Direct.inc(d.At(i), d.At(i+1))
	}

	// 2. Position: numbers two sort-positions apart
	// 3. Combination: consecutive pair -> following number
	for i := 0; i+2 < k; i++ {
		t.Position.inc(d.At(i), d.At(i+2))
		t.Combination.inc(Pair{First: d.At(i), Second: d.At(i + 1)}, d.At(i+2))
	}

	t.draws++
}

func (b *Builder) finish(ctx context.Context, t *Table, skipped int) {
	if t.Empty() {
		b.logger.Warn("transition table built from empty history; generation will fall back to uniform selection")
	} else {
		b.logger.Info("built transition table",
			"draws", t.draws,
			"direct_states", t.Direct.Len(),
			"position_states", t.Position.Len(),
			"combination_states", t.Combination.Len(),
		)
	}

	if b.hooks.OnTableBuilt != nil {
		b.hooks.OnTableBuilt(ctx, &domain.TableEvent{
			EventBase:       domain.NewEventBase(domain.EventTableBuilt),
			Draws:           t.draws,
			Skipped:         skipped,
			DirectKeys:      t.Direct.Len(),
			PositionKeys:    t.Position.Len(),
			CombinationKeys: t.Combination.Len(),
			Empty:           t.Empty(),
		})
	}
}
