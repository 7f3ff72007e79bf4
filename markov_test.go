package markov_test

import (
	"context"
	"testing"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/draw"
	"github.com/aretw0/markov/pkg/evaluate"
	"github.com/aretw0/markov/pkg/observability"
	"github.com/aretw0/markov/pkg/scoring"
	"github.com/aretw0/markov/pkg/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(draws ...[]int) []draw.Record {
	out := make([]draw.Record, len(draws))
	for i, d := range draws {
		out[i] = draw.NewRecord("", d...)
	}
	return out
}

func assertValid(t *testing.T, d domain.Domain, c domain.Combination, size int) {
	t.Helper()
	nums := c.Numbers()
	require.Len(t, nums, size)
	seen := map[int]bool{}
	for _, n := range nums {
		assert.True(t, d.Contains(n), "%d out of range", n)
		assert.False(t, seen[n], "%d repeated", n)
		seen[n] = true
	}
}

func TestModel_SingleDraw(t *testing.T) {
	m, err := markov.New(records([]int{1, 2, 3, 4, 5}), markov.WithSeed(1))
	require.NoError(t, err)

	tbl := m.Table()
	assert.Equal(t, map[int]int{2: 1}, tbl.Direct.Successors(1))
	assert.Equal(t, map[int]int{3: 1}, tbl.Position.Successors(1))
	assert.Equal(t, map[int]int{3: 1}, tbl.Combination.Successors(table.Pair{First: 1, Second: 2}))

	assert.Equal(t, 2.0, m.Score(2, []int{1}))
	assert.Equal(t, 6.5, m.Score(3, []int{1, 2}))
	assert.Greater(t, m.Score(3, []int{1, 2}), m.Score(2, []int{1, 2}))
	assert.False(t, m.EmptyHistory())
	assert.Equal(t, 1, m.Report().Accepted)
}

func TestModel_SharedTransitionsAccumulate(t *testing.T) {
	m, err := markov.New(records([]int{1, 2, 3, 4, 5}, []int{2, 3, 4, 5, 6}))
	require.NoError(t, err)

	assert.Equal(t, map[int]int{3: 2}, m.Table().Direct.Successors(2))

	next, ok := m.MostLikelyNext(2, table.LevelDirect)
	require.True(t, ok)
	assert.Equal(t, 3, next)

	snap := m.Transitions(2)
	assert.Equal(t, map[int]int{3: 2}, snap.Direct)
	assert.Equal(t, map[int]int{4: 2}, snap.Position)
}

func TestModel_GenerateFollowsEvidence(t *testing.T) {
	m, err := markov.New(records([]int{1, 2, 3, 4, 5}), markov.WithSeed(7))
	require.NoError(t, err)

	c, err := m.Generate(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, c.Numbers())

	// Without a seed the most frequent predecessor starts the combination.
	c, err = m.Generate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, c.Numbers())
}

func TestModel_GenerateMany(t *testing.T) {
	m, err := markov.New(records([]int{1, 2, 3, 4, 5}), markov.WithSeed(3), markov.WithWorkers(2))
	require.NoError(t, err)

	combos, err := m.GenerateMany(context.Background(), 3, 5)
	require.NoError(t, err)
	require.Len(t, combos, 3)
	for _, c := range combos {
		assertValid(t, m.Domain(), c, 5)
	}
}

func TestModel_SeedIsReproducible(t *testing.T) {
	history := records([]int{1, 9, 17, 30, 44}, []int{3, 9, 21, 30, 48})
	ctx := context.Background()

	run := func(workers int) []domain.Combination {
		m, err := markov.New(history, markov.WithSeed(99), markov.WithWorkers(workers))
		require.NoError(t, err)
		combos, err := m.GenerateMany(ctx, 6, 5)
		require.NoError(t, err)
		return combos
	}

	assert.Equal(t, run(1), run(4))
}

func TestModel_EmptyHistory(t *testing.T) {
	m, err := markov.New(nil, markov.WithDomain(domain.FrenchLoto), markov.WithSeed(5))
	require.NoError(t, err)
	assert.True(t, m.EmptyHistory())

	c, err := m.Generate(context.Background(), 5)
	require.NoError(t, err)
	assertValid(t, domain.FrenchLoto, c, 5)
}

func TestModel_InvalidRecords(t *testing.T) {
	history := records([]int{1, 2, 3, 4, 5}, []int{1, 2, 3}, []int{1, 2, 3, 4, 51})

	_, err := markov.New(history)
	assert.ErrorIs(t, err, domain.ErrInvalidDrawFormat)

	m, err := markov.New(history, markov.WithSkipInvalid(true))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Report().Accepted)
	assert.Equal(t, 2, m.Report().Skipped)
	assert.ErrorIs(t, m.Report().Err(), domain.ErrInvalidDrawFormat)
}

func TestModel_Options(t *testing.T) {
	_, err := markov.New(nil, markov.WithDomain(domain.Domain{Max: 3, DrawSize: 5}))
	assert.ErrorIs(t, err, domain.ErrInvalidDomain)

	_, err = markov.New(nil, markov.WithWeights(scoring.Weights{Direct: -1}))
	assert.Error(t, err)

	m, err := markov.New(records([]int{1, 2, 3, 4, 5}), markov.WithWeights(scoring.Weights{Direct: 1}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Score(3, []int{1, 2}))

	m, err = markov.New(records([]int{1, 2, 3, 4, 5}, []int{2, 3, 4, 5, 6}), markov.WithPoolSize(2))
	require.NoError(t, err)
	assert.Len(t, m.Pool(), 2)
}

func TestModel_Errors(t *testing.T) {
	m, err := markov.New(records([]int{1, 2, 3, 4, 5}))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = m.Generate(ctx, 51)
	assert.ErrorIs(t, err, domain.ErrDomainExhaustion)

	_, err = m.Generate(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)

	_, err = m.Generate(ctx, 5, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSeed)
}

func TestFromDraws(t *testing.T) {
	d1, err := domain.NewDraw(domain.Euromillions, []int{5, 4, 3, 2, 1})
	require.NoError(t, err)

	m, err := markov.FromDraws(context.Background(), []domain.Draw{d1})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Table().Draws())

	_, err = markov.FromDraws(context.Background(), []domain.Draw{d1}, markov.WithDomain(domain.Domain{Max: 50, DrawSize: 6}))
	assert.ErrorIs(t, err, domain.ErrInvalidDrawFormat)
}

func TestFromDraws_OutOfDomain(t *testing.T) {
	wide, err := domain.NewDraw(domain.Euromillions, []int{11, 12, 13, 14, 15})
	require.NoError(t, err)

	_, err = markov.FromDraws(context.Background(), []domain.Draw{wide}, markov.WithDomain(domain.Domain{Max: 10, DrawSize: 5}))
	require.ErrorIs(t, err, domain.ErrInvalidDrawFormat)
	assert.Contains(t, err.Error(), "draw 0")

	loto, err := domain.NewDraw(domain.Euromillions, []int{1, 2, 3, 4, 50})
	require.NoError(t, err)
	_, err = markov.FromDraws(context.Background(), []domain.Draw{loto}, markov.WithDomain(domain.FrenchLoto))
	assert.ErrorIs(t, err, domain.ErrInvalidDrawFormat)
}

func TestModel_NewBatch(t *testing.T) {
	m, err := markov.New(records([]int{1, 2, 3, 4, 5}), markov.WithSeed(11))
	require.NoError(t, err)

	b, err := m.NewBatch(context.Background(), "b1", 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, uint64(11), b.RandSeed)
	assert.Equal(t, 4, b.TargetSize)
	assert.Equal(t, domain.Euromillions, b.Domain)
	assert.Len(t, b.Combinations, 2)
	assert.False(t, b.CreatedAt.IsZero())

	again, err := m.NewBatch(context.Background(), "b2", 2, 4)
	require.NoError(t, err)
	assert.Equal(t, m.RandSeed(), again.RandSeed)
}

func TestModel_MetricsHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	m, err := markov.New(records([]int{1, 2, 3, 4, 5}), markov.WithHooks(metrics.Hooks()), markov.WithSeed(2))
	require.NoError(t, err)

	_, err = m.GenerateMany(context.Background(), 2, 5)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TablesBuilt))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Combinations))
}

func TestTrainer_Backtest(t *testing.T) {
	history := records(
		[]int{1, 2, 3, 4, 5},
		[]int{1, 2, 3, 4, 5},
		[]int{1, 2, 3, 4, 5},
		[]int{1, 2, 3, 4, 5},
	)
	n := draw.NewNormalizer(domain.Euromillions)

	report, err := evaluate.Backtest(context.Background(), history, n, markov.Trainer(markov.WithSeed(1)),
		evaluate.Options{TestRatio: 0.25, Combinations: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, report.TrainSize)
	require.Len(t, report.Results, 1)
	assert.Equal(t, 5, report.Results[0].BestMatch)
}
