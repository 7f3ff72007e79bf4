package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/evaluate"
	"github.com/aretw0/markov/pkg/table"
)

// CombinationsMarkdown lists a generated batch as a numbered table.
func CombinationsMarkdown(b domain.Batch) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Combinations\n\n")
	fmt.Fprintf(&sb, "Domain **%s**, %d numbers each", b.Domain, b.TargetSize)
	if b.RandSeed != 0 {
		fmt.Fprintf(&sb, ", seed `%d`", b.RandSeed)
	}
	if b.ID != "" {
		fmt.Fprintf(&sb, ", batch `%s`", b.ID)
	}
	sb.WriteString(".\n\n| # | Numbers |\n|---|---|\n")
	for i, c := range b.Combinations {
		fmt.Fprintf(&sb, "| %d | %s |\n", i+1, joinInts(c.Numbers(), " "))
	}
	return sb.String()
}

// SnapshotMarkdown describes every recorded successor of one number.
func SnapshotMarkdown(s table.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Transitions of %d\n\n", s.Number)

	writeLevel := func(title string, successors map[int]int) {
		fmt.Fprintf(&sb, "## %s\n\n", title)
		if len(successors) == 0 {
			sb.WriteString("_none_\n\n")
			return
		}
		sb.WriteString("| Next | Count |\n|---|---|\n")
		for _, n := range rankSuccessors(successors) {
			fmt.Fprintf(&sb, "| %d | %d |\n", n, successors[n])
		}
		sb.WriteString("\n")
	}
	writeLevel("Direct", s.Direct)
	writeLevel("Position", s.Position)

	sb.WriteString("## Combination\n\n")
	if len(s.Combination) == 0 {
		sb.WriteString("_none_\n")
		return sb.String()
	}
	sb.WriteString("| Pair | Next | Count |\n|---|---|---|\n")
	for _, p := range sortedPairs(s.Combination) {
		successors := s.Combination[p]
		for _, n := range rankSuccessors(successors) {
			fmt.Fprintf(&sb, "| %s | %d | %d |\n", p, n, successors[n])
		}
	}
	return sb.String()
}

// SummaryMarkdown describes a built table and what the build skipped.
func SummaryMarkdown(d domain.Domain, t *table.Table, r *table.Report, pool []int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Transition table\n\n")
	fmt.Fprintf(&sb, "- Domain: **%s**\n", d)
	fmt.Fprintf(&sb, "- Draws: %d", t.Draws())
	if r != nil && r.Skipped > 0 {
		fmt.Fprintf(&sb, " (%d skipped)", r.Skipped)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "- Direct states: %d\n", t.Direct.Len())
	fmt.Fprintf(&sb, "- Position states: %d\n", t.Position.Len())
	fmt.Fprintf(&sb, "- Combination states: %d\n", t.Combination.Len())
	if len(pool) > 0 {
		fmt.Fprintf(&sb, "- Seed pool: %s\n", joinInts(pool, ", "))
	}
	return sb.String()
}

// BacktestMarkdown summarizes a backtest and its best draws.
func BacktestMarkdown(r *evaluate.Report, top int) string {
	var sb strings.Builder
	sb.WriteString("# Backtest\n\n")
	fmt.Fprintf(&sb, "- Train draws: %d\n- Test draws: %d\n- Combinations: %d\n", r.TrainSize, r.TestSize, r.Combinations)
	fmt.Fprintf(&sb, "- Mean best match: %.2f\n\n", r.MeanBest)

	sb.WriteString("| Best match | Draws |\n|---|---|\n")
	hits := slices.Sorted(maps.Keys(r.BestHistogram))
	slices.Reverse(hits)
	for _, h := range hits {
		fmt.Fprintf(&sb, "| %d | %d |\n", h, r.BestHistogram[h])
	}

	if top > 0 && len(r.Results) > 0 {
		sb.WriteString("\n## Best draws\n\n| Draw | Best | Mean |\n|---|---|---|\n")
		for _, res := range r.TopBest(top) {
			fmt.Fprintf(&sb, "| %s | %d | %.2f |\n", res.Draw, res.BestMatch, res.MeanMatch)
		}
	}
	return sb.String()
}

// rankSuccessors orders by count descending, then number ascending.
func rankSuccessors(successors map[int]int) []int {
	keys := slices.Collect(maps.Keys(successors))
	slices.SortFunc(keys, func(a, b int) int {
		if successors[a] != successors[b] {
			return successors[b] - successors[a]
		}
		return a - b
	})
	return keys
}

func sortedPairs(m map[table.Pair]map[int]int) []table.Pair {
	pairs := slices.Collect(maps.Keys(m))
	slices.SortFunc(pairs, func(a, b table.Pair) int {
		if a.First != b.First {
			return a.First - b.First
		}
		return a.Second - b.Second
	})
	return pairs
}

func joinInts(ns []int, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, sep)
}
