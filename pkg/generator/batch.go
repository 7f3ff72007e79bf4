package generator

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/aretw0/markov/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultPoolSize is how many of the most frequent numbers seed a batch.
const DefaultPoolSize = 20

// Batch produces many independent combinations with diversified seeds.
type Batch struct {
	gen      *Generator
	rng      *rand.Rand
	poolSize int
	workers  int
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithPoolSize sets how many top-ranked numbers are cycled through as seeds.
func WithPoolSize(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.poolSize = n
		}
	}
}

// WithWorkers sets how many combinations are generated concurrently.
func WithWorkers(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithBatchRand injects the random source per-combination sources are
// derived from. It defaults to the generator's source.
func WithBatchRand(r *rand.Rand) BatchOption {
	return func(b *Batch) {
		if r != nil {
			b.rng = r
		}
	}
}

// NewBatch creates a batch producer on top of g.
func NewBatch(g *Generator, opts ...BatchOption) *Batch {
	b := &Batch{
		gen:      g,
		rng:      g.rng,
		poolSize: DefaultPoolSize,
		workers:  1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Pool returns the seed pool: up to PoolSize numbers ranked by outgoing
// direct frequency, highest first.
func (b *Batch) Pool() []int {
	return b.gen.table.Ranked(b.poolSize)
}

type job struct {
	seed int
	rng  *rand.Rand
}

// GenerateMany returns n combinations of targetSize numbers. Combination i is
// seeded with the (i mod len(pool))-th most frequent number, or a uniformly
// random number when the table is empty. The i-th result is the same for a
// given random source whatever the number of workers.
func (b *Batch) GenerateMany(ctx context.Context, n, targetSize int) ([]domain.Combination, error) {
	if n < 0 {
		return nil, fmt.Errorf("number of combinations must not be negative, got %d", n)
	}
	if err := b.gen.checkTarget(targetSize); err != nil {
		return nil, err
	}
	if n == 0 {
		return []domain.Combination{}, nil
	}

	pool := b.Pool()

	// Derive every job's seed and random source before any work starts so the
	// outcome does not depend on scheduling.
	jobs := make([]job, n)
	for i := range jobs {
		var seed int
		if len(pool) > 0 {
			seed = pool[i%len(pool)]
		} else {
			seed = b.rng.IntN(b.gen.domain.Max) + 1
		}
		jobs[i] = job{
			seed: seed,
			rng:  rand.New(rand.NewPCG(b.rng.Uint64(), b.rng.Uint64())),
		}
	}

	b.gen.logger.Debug("generating batch",
		"count", n, "target_size", targetSize, "pool", pool, "workers", b.workers)

	results := make([]domain.Combination, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, j := range jobs {
		g.Go(func() error {
			c, err := b.gen.WithRand(j.rng).Generate(gctx, targetSize, []int{j.seed})
			if err != nil {
				return fmt.Errorf("combination %d: %w", i, err)
			}
			results[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
