package domain

import (
	"fmt"
	"slices"
)

// Draw is one historical record: an ascending sequence of distinct numbers
// of fixed arity. The zero value is an empty draw.
type Draw struct {
	numbers []int
}

// NewDraw validates numbers against d and returns them as a sorted Draw.
// The input slice is not retained.
func NewDraw(d Domain, numbers []int) (Draw, error) {
	if len(numbers) != d.DrawSize {
		return Draw{}, fmt.Errorf("%w: expected %d numbers, got %d", ErrInvalidDrawFormat, d.DrawSize, len(numbers))
	}

	sorted := slices.Clone(numbers)
	slices.Sort(sorted)

	for i, n := range sorted {
		if !d.Contains(n) {
			return Draw{}, fmt.Errorf("%w: %d is outside [1, %d]", ErrInvalidDrawFormat, n, d.Max)
		}
		if i > 0 && sorted[i-1] == n {
			return Draw{}, fmt.Errorf("%w: %d appears more than once", ErrInvalidDrawFormat, n)
		}
	}

	return Draw{numbers: sorted}, nil
}

// Numbers returns a copy of the draw's numbers in ascending order.
func (d Draw) Numbers() []int {
	return slices.Clone(d.numbers)
}

// Len returns the draw arity.
func (d Draw) Len() int {
	return len(d.numbers)
}

// At returns the i-th smallest number.
func (d Draw) At(i int) int {
	return d.numbers[i]
}

func (d Draw) String() string {
	return fmt.Sprint(d.numbers)
}
