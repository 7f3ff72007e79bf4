package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/evaluate"
	"github.com/aretw0/markov/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinationsMarkdown(t *testing.T) {
	md := CombinationsMarkdown(domain.Batch{
		ID:         "b1",
		Domain:     domain.Euromillions,
		TargetSize: 5,
		RandSeed:   42,
		Combinations: []domain.Combination{
			domain.NewCombination([]int{5, 1, 3, 2, 4}),
		},
	})

	assert.Contains(t, md, "seed `42`")
	assert.Contains(t, md, "batch `b1`")
	assert.Contains(t, md, "| 1 | 1 2 3 4 5 |")
}

func TestSnapshotMarkdown(t *testing.T) {
	md := SnapshotMarkdown(table.Snapshot{
		Number:   2,
		Direct:   map[int]int{3: 1, 9: 4},
		Position: map[int]int{},
		Combination: map[table.Pair]map[int]int{
			{First: 1, Second: 2}: {3: 1},
		},
	})

	assert.Contains(t, md, "# Transitions of 2")
	assert.Less(t, bytes.Index([]byte(md), []byte("| 9 | 4 |")), bytes.Index([]byte(md), []byte("| 3 | 1 |")))
	assert.Contains(t, md, "## Position\n\n_none_")
	assert.Contains(t, md, "| (1, 2) | 3 | 1 |")
}

func TestSummaryMarkdown(t *testing.T) {
	tbl := table.New()
	md := SummaryMarkdown(domain.FrenchLoto, tbl, &table.Report{Skipped: 2}, []int{7, 3})

	assert.Contains(t, md, "- Draws: 0 (2 skipped)")
	assert.Contains(t, md, "- Seed pool: 7, 3")
}

func TestBacktestMarkdown(t *testing.T) {
	md := BacktestMarkdown(&evaluate.Report{
		TrainSize:     7,
		TestSize:      2,
		Combinations:  5,
		MeanBest:      1.5,
		BestHistogram: map[int]int{1: 1, 2: 1},
		Results: []evaluate.DrawResult{
			{Draw: "a", BestMatch: 1, MeanMatch: 0.4},
			{Draw: "b", BestMatch: 2, MeanMatch: 0.8},
		},
	}, 1)

	assert.Contains(t, md, "- Mean best match: 1.50")
	assert.Contains(t, md, "| b | 2 | 0.80 |")
	assert.NotContains(t, md, "| a | 1 |")
}

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	require.NoError(t, p.Markdown("# Title\n"))
	p.Warn("%d records skipped", 2)

	assert.Equal(t, "# Title\nwarning: 2 records skipped\n", buf.String())
	assert.False(t, IsTerminal(&buf))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.1.0")
	assert.Contains(t, buf.String(), "version 0.1.0")
}
