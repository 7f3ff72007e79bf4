// Package scoring ranks candidate numbers against a partially built combination
// using the three levels of a transition table.
package scoring

import (
	"fmt"

	"github.com/aretw0/markov/pkg/table"
)

// Weights scales each transition level's contribution to a score.
type Weights struct {
	Direct      float64 `json:"direct" yaml:"direct" mapstructure:"direct"`
	Position    float64 `json:"position" yaml:"position" mapstructure:"position"`
	Combination float64 `json:"combination" yaml:"combination" mapstructure:"combination"`
}

// DefaultWeights ranks combination evidence (two prior numbers predicting a
// third) highest, then direct adjacency, then position skips.
var DefaultWeights = Weights{
	Direct:      2.0,
	Position:    1.5,
	Combination: 3.0,
}

// Validate rejects negative weights, which would make scores negative.
func (w Weights) Validate() error {
	if w.Direct < 0 || w.Position < 0 || w.Combination < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", w)
	}
	return nil
}

// Breakdown is a score split by level, before weighting.
type Breakdown struct {
	Direct      int
	Position    int
	Combination int
}

// Scorer computes candidate scores from a read-only table.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	table   *table.Table
	weights Weights
}

// NewScorer creates a scorer over t with the given weights.
func NewScorer(t *table.Table, w Weights) *Scorer {
	return &Scorer{table: t, weights: w}
}

// Weights returns the weights in use.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score returns the weighted evidence that candidate belongs after existing.
// existing must be in insertion order: combination evidence is read from its
// consecutive pairs. An empty existing always scores zero.
func (s *Scorer) Score(candidate int, existing []int) float64 {
	b := s.Breakdown(candidate, existing)
	return s.weights.Direct*float64(b.Direct) +
		s.weights.Position*float64(b.Position) +
		s.weights.Combination*float64(b.Combination)
}

// Breakdown returns the raw, unweighted counts behind Score.
func (s *Scorer) Breakdown(candidate int, existing []int) Breakdown {
	var b Breakdown
	for _, e := range existing {
		b.Direct += s.table.Direct.Get(e, candidate)
		b.Position += s.table.Position.Get(e, candidate)
	}
	for i := 0; i+1 < len(existing); i++ {
		pair := table.Pair{First: existing[i], Second: existing[i+1]}
		b.Combination += s.table.Combination.Get(pair, candidate)
	}
	return b
}
