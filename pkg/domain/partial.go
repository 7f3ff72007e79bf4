package domain

import (
	"fmt"
	"slices"
)

// Partial is the generation state of a combination under construction.
// It keeps insertion order, which the combination-level score depends on.
// A Partial is owned by a single generation call and is not safe for
// concurrent use.
type Partial struct {
	domain Domain
	order  []int
	used   []bool
}

// NewPartial creates a partial combination seeded with seed.
// Every seed number must be in the domain and appear once.
func NewPartial(d Domain, seed []int) (*Partial, error) {
	p := &Partial{
		domain: d,
		order:  make([]int, 0, d.DrawSize),
		used:   make([]bool, d.Max+1),
	}
	for _, n := range seed {
		if err := p.Add(n); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
	}
	return p, nil
}

// Add appends n to the partial combination.
func (p *Partial) Add(n int) error {
	if !p.domain.Contains(n) {
		return fmt.Errorf("%d is outside [1, %d]", n, p.domain.Max)
	}
	if p.used[n] {
		return fmt.Errorf("%d already present", n)
	}
	p.used[n] = true
	p.order = append(p.order, n)
	return nil
}

// Contains reports whether n has already been chosen.
func (p *Partial) Contains(n int) bool {
	return p.domain.Contains(n) && p.used[n]
}

// Len returns the number of chosen values.
func (p *Partial) Len() int {
	return len(p.order)
}

// Numbers returns a copy of the chosen values in insertion order.
func (p *Partial) Numbers() []int {
	return slices.Clone(p.order)
}

// Unused returns every domain number not yet chosen, ascending.
func (p *Partial) Unused() []int {
	unused := make([]int, 0, p.domain.Max-len(p.order))
	for n := 1; n <= p.domain.Max; n++ {
		if !p.used[n] {
			unused = append(unused, n)
		}
	}
	return unused
}

// Complete freezes the partial into an ascending Combination.
func (p *Partial) Complete() Combination {
	return NewCombination(p.order)
}
