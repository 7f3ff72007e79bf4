package generator_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/generator"
	"github.com/aretw0/markov/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var history = [][]int{
	{1, 8, 13, 21, 34},
	{2, 13, 21, 34, 47},
	{5, 13, 21, 29, 47},
	{1, 8, 21, 34, 40},
	{3, 13, 21, 29, 47},
}

func TestGenerateMany_Valid(t *testing.T) {
	tbl := buildTable(t, domain.Euromillions, []int{1, 2, 3, 4, 5})
	b := generator.NewBatch(newGenerator(domain.Euromillions, tbl, 8))

	combos, err := b.GenerateMany(context.Background(), 3, 5)
	require.NoError(t, err)
	require.Len(t, combos, 3)
	for _, c := range combos {
		assertValid(t, c, domain.Euromillions, 5)
	}
}

func TestGenerateMany_CyclesSeedPool(t *testing.T) {
	tbl := buildTable(t, domain.Euromillions, history...)

	var seeds [][]int
	g := newGenerator(domain.Euromillions, tbl, 8, generator.WithHooks(domain.LifecycleHooks{
		OnCombination: func(_ context.Context, e *domain.CombinationEvent) { seeds = append(seeds, e.Seed) },
	}))
	b := generator.NewBatch(g, generator.WithPoolSize(2))

	// Outgoing totals: 21 leads with 5, then 13 with 4.
	require.Equal(t, []int{21, 13}, b.Pool())

	combos, err := b.GenerateMany(context.Background(), 5, 5)
	require.NoError(t, err)
	require.Len(t, combos, 5)
	assert.Equal(t, [][]int{{21}, {13}, {21}, {13}, {21}}, seeds)
	for i, c := range combos {
		assertValid(t, c, domain.Euromillions, 5)
		assert.True(t, c.Contains(seeds[i][0]))
	}
}

func TestGenerateMany_IndependentOfWorkers(t *testing.T) {
	tbl := buildTable(t, domain.Euromillions, history...)
	ctx := context.Background()

	sequential, err := generator.NewBatch(
		newGenerator(domain.Euromillions, tbl, 1),
		generator.WithBatchRand(rand.New(rand.NewPCG(10, 20))),
	).GenerateMany(ctx, 12, 5)
	require.NoError(t, err)

	parallel, err := generator.NewBatch(
		newGenerator(domain.Euromillions, tbl, 1),
		generator.WithBatchRand(rand.New(rand.NewPCG(10, 20))),
		generator.WithWorkers(4),
	).GenerateMany(ctx, 12, 5)
	require.NoError(t, err)

	require.Len(t, parallel, len(sequential))
	for i := range sequential {
		assert.Equal(t, sequential[i].Numbers(), parallel[i].Numbers(), "combination %d", i)
	}
}

func TestGenerateMany_EmptyTable(t *testing.T) {
	b := generator.NewBatch(newGenerator(domain.FrenchLoto, table.New(), 3))
	assert.Empty(t, b.Pool())

	combos, err := b.GenerateMany(context.Background(), 4, 5)
	require.NoError(t, err)
	require.Len(t, combos, 4)
	for _, c := range combos {
		assertValid(t, c, domain.FrenchLoto, 5)
	}
}

func TestGenerateMany_Errors(t *testing.T) {
	b := generator.NewBatch(newGenerator(domain.Euromillions, table.New(), 3))
	ctx := context.Background()

	_, err := b.GenerateMany(ctx, 2, 51)
	assert.ErrorIs(t, err, domain.ErrDomainExhaustion)

	_, err = b.GenerateMany(ctx, -1, 5)
	assert.Error(t, err)

	combos, err := b.GenerateMany(ctx, 0, 5)
	require.NoError(t, err)
	assert.Empty(t, combos)
}
