package table

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Pair is an ordered pair of consecutive numbers, the key of the combination level.
type Pair struct {
	First  int
	Second int
}

// Contains reports whether n is one of the pair's members.
func (p Pair) Contains(n int) bool {
	return p.First == n || p.Second == n
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.First, p.Second)
}

// MarshalText encodes the pair as "first,second" so it can key JSON objects.
func (p Pair) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(p.First) + "," + strconv.Itoa(p.Second)), nil
}

// UnmarshalText decodes the "first,second" form.
func (p *Pair) UnmarshalText(text []byte) error {
	first, second, ok := strings.Cut(string(text), ",")
	if !ok {
		return fmt.Errorf("invalid pair %q", text)
	}
	a, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return fmt.Errorf("invalid pair %q: %w", text, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return fmt.Errorf("invalid pair %q: %w", text, err)
	}
	*p = Pair{First: a, Second: b}
	return nil
}

// Counts is a sparse two-level counter: key -> successor -> occurrences.
// Reads of absent keys or successors return zero.
type Counts[K comparable] struct {
	m map[K]map[int]int
}

func newCounts[K comparable]() Counts[K] {
	return Counts[K]{m: make(map[K]map[int]int)}
}

func (c Counts[K]) inc(key K, successor int) {
	row, ok := c.m[key]
	if !ok {
		row = make(map[int]int)
		c.m[key] = row
	}
	row[successor]++
}

// Get returns how often successor followed key, or 0 when never observed.
func (c Counts[K]) Get(key K, successor int) int {
	return c.m[key][successor]
}

// Successors returns a copy of every successor observed after key.
// The result is never nil.
func (c Counts[K]) Successors(key K) map[int]int {
	row, ok := c.m[key]
	if !ok {
		return map[int]int{}
	}
	return maps.Clone(row)
}

// Total returns the sum of all counts recorded for key.
func (c Counts[K]) Total(key K) int {
	total := 0
	for _, n := range c.m[key] {
		total += n
	}
	return total
}

// Has reports whether key has at least one successor.
func (c Counts[K]) Has(key K) bool {
	return len(c.m[key]) > 0
}

// Len returns the number of distinct keys.
func (c Counts[K]) Len() int {
	return len(c.m)
}

// Range calls fn for every key with a copy of its successors.
// Iteration order is unspecified.
func (c Counts[K]) Range(fn func(key K, successors map[int]int) bool) {
	for k, row := range c.m {
		if !fn(k, maps.Clone(row)) {
			return
		}
	}
}

// Equal reports whether both counters hold identical counts.
func (c Counts[K]) Equal(other Counts[K]) bool {
	return maps.EqualFunc(c.m, other.m, func(a, b map[int]int) bool {
		return maps.Equal(a, b)
	})
}
