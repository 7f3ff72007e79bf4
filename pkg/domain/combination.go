package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Combination is a completed, ascending set of distinct numbers.
// It is immutable: accessors return copies.
type Combination struct {
	numbers []int
}

// NewCombination returns numbers as an ascending Combination.
// The input slice is not retained.
func NewCombination(numbers []int) Combination {
	sorted := slices.Clone(numbers)
	slices.Sort(sorted)
	return Combination{numbers: sorted}
}

// Numbers returns a copy of the combination in ascending order.
func (c Combination) Numbers() []int {
	return slices.Clone(c.numbers)
}

// Len returns the number of values in the combination.
func (c Combination) Len() int {
	return len(c.numbers)
}

// Contains reports whether n is part of the combination.
func (c Combination) Contains(n int) bool {
	_, found := slices.BinarySearch(c.numbers, n)
	return found
}

// Equal reports whether both combinations hold the same numbers.
func (c Combination) Equal(other Combination) bool {
	return slices.Equal(c.numbers, other.numbers)
}

func (c Combination) String() string {
	return fmt.Sprint(c.numbers)
}

// MarshalJSON encodes the combination as a plain list of integers.
func (c Combination) MarshalJSON() ([]byte, error) {
	if c.numbers == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.numbers)
}

// UnmarshalJSON decodes a plain list of integers, sorting it.
func (c *Combination) UnmarshalJSON(data []byte) error {
	var numbers []int
	if err := json.Unmarshal(data, &numbers); err != nil {
		return err
	}
	*c = NewCombination(numbers)
	return nil
}
