package table

import (
	"cmp"
	"slices"
)

// Table holds the three transition levels built from a draw history.
type Table struct {
	Direct      Counts[int]
	Position    Counts[int]
	Combination Counts[Pair]

	draws int
}

// New returns an empty table.
func New() *Table {
	return &Table{
		Direct:      newCounts[int](),
		Position:    newCounts[int](),
		Combination: newCounts[Pair](),
	}
}

// Draws returns how many draws contributed to the table.
func (t *Table) Draws() int {
	return t.draws
}

// Empty reports whether the table was built from zero draws.
// Generation against an empty table degenerates to uniform random selection.
func (t *Table) Empty() bool {
	return t.draws == 0
}

// Equal reports whether both tables hold identical counts.
func (t *Table) Equal(other *Table) bool {
	return t.draws == other.draws &&
		t.Direct.Equal(other.Direct) &&
		t.Position.Equal(other.Position) &&
		t.Combination.Equal(other.Combination)
}

// OutgoingFrequency returns the total direct-transition count leaving n.
func (t *Table) OutgoingFrequency(n int) int {
	return t.Direct.Total(n)
}

// Ranked returns the numbers with outgoing direct transitions, ordered by
// outgoing frequency descending with ties broken by the smaller number.
// A positive limit truncates the result.
func (t *Table) Ranked(limit int) []int {
	type entry struct {
		number int
		freq   int
	}
	entries := make([]entry, 0, t.Direct.Len())
	t.Direct.Range(func(n int, successors map[int]int) bool {
		freq := 0
		for _, c := range successors {
			freq += c
		}
		if freq > 0 {
			entries = append(entries, entry{number: n, freq: freq})
		}
		return true
	})

	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.freq, a.freq); c != 0 {
			return c
		}
		return cmp.Compare(a.number, b.number)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	ranked := make([]int, len(entries))
	for i, e := range entries {
		ranked[i] = e.number
	}
	return ranked
}

// MostFrequent returns the number with the highest outgoing direct frequency.
// ok is false when the table has no direct transitions.
func (t *Table) MostFrequent() (n int, ok bool) {
	ranked := t.Ranked(1)
	if len(ranked) == 0 {
		return 0, false
	}
	return ranked[0], true
}
