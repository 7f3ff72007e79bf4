// Package evaluate measures generated combinations against held-out draws.
//
// It only reports how many numbers overlap; it makes no claim about the
// predictive value of the model.
package evaluate

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/draw"
)

// DefaultTestRatio is the share of the most recent draws held out for testing.
const DefaultTestRatio = 0.3

// Producer generates combinations, typically a model trained on a split.
type Producer interface {
	GenerateMany(ctx context.Context, n, targetSize int) ([]domain.Combination, error)
}

// Trainer builds a Producer from training records.
type Trainer func(ctx context.Context, train []draw.Record) (Producer, error)

// Matches counts the numbers c shares with d.
func Matches(c domain.Combination, d domain.Draw) int {
	n := 0
	for i := range d.Len() {
		if c.Contains(d.At(i)) {
			n++
		}
	}
	return n
}

// SplitByDate holds out the most recent share of records for testing.
// Records are ordered by date, newest first; undated records count as oldest
// and keep their relative order. The input slice is not modified.
func SplitByDate(records []draw.Record, testRatio float64) (train, test []draw.Record, err error) {
	if testRatio < 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("test ratio must be in [0, 1), got %v", testRatio)
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b draw.Record) int {
		return b.Date.Compare(a.Date)
	})

	testSize := int(float64(len(sorted)) * testRatio)
	return sorted[testSize:], sorted[:testSize], nil
}

// Overused returns every number that appears in more than threshold combinations,
// with its usage count.
func Overused(combos []domain.Combination, threshold int) map[int]int {
	usage := make(map[int]int)
	for _, c := range combos {
		for _, n := range c.Numbers() {
			usage[n]++
		}
	}
	for n, count := range usage {
		if count <= threshold {
			delete(usage, n)
		}
	}
	return usage
}

// DrawResult is the outcome of one held-out draw.
type DrawResult struct {
	Draw      string  `json:"draw"`
	BestMatch int     `json:"best_match"`
	MeanMatch float64 `json:"mean_match"`
}

// Report summarizes a backtest.
type Report struct {
	TrainSize    int          `json:"train_size"`
	TestSize     int          `json:"test_size"`
	Combinations int          `json:"combinations"`
	Results      []DrawResult `json:"results"`
	MeanBest     float64      `json:"mean_best"`
	// BestHistogram maps a best-match count to how many test draws reached it.
	BestHistogram map[int]int `json:"best_histogram"`
}

// Options tunes Backtest.
type Options struct {
	TestRatio    float64
	Combinations int
	TargetSize   int
	// SkipInvalid drops malformed test records instead of failing.
	SkipInvalid bool
}

func (o *Options) applyDefaults(d domain.Domain) {
	if o.TestRatio == 0 {
		o.TestRatio = DefaultTestRatio
	}
	if o.Combinations == 0 {
		o.Combinations = 5
	}
	if o.TargetSize == 0 {
		o.TargetSize = d.DrawSize
	}
}

// Backtest trains on the older records, generates opts.Combinations
// combinations once, and scores them against every held-out draw.
func Backtest(ctx context.Context, records []draw.Record, n *draw.Normalizer, train Trainer, opts Options) (*Report, error) {
	opts.applyDefaults(n.Domain())

	trainSet, testSet, err := SplitByDate(records, opts.TestRatio)
	if err != nil {
		return nil, err
	}
	if len(trainSet) == 0 || len(testSet) == 0 {
		return nil, fmt.Errorf("%w: %d records cannot be split into train and test sets", domain.ErrEmptyHistory, len(records))
	}

	var (
		testDraws []domain.Draw
		labels    []string
	)
	for i, rec := range testSet {
		d, err := n.Normalize(rec)
		if err != nil {
			if opts.SkipInvalid {
				continue
			}
			return nil, fmt.Errorf("test record %d: %w", i, err)
		}
		testDraws = append(testDraws, d)
		labels = append(labels, rec.Label())
	}
	if len(testDraws) == 0 {
		return nil, fmt.Errorf("%w: no valid draw in the test set", domain.ErrEmptyHistory)
	}

	producer, err := train(ctx, trainSet)
	if err != nil {
		return nil, fmt.Errorf("failed to train: %w", err)
	}
	combos, err := producer.GenerateMany(ctx, opts.Combinations, opts.TargetSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate: %w", err)
	}

	report := &Report{
		TrainSize:     len(trainSet),
		TestSize:      len(testDraws),
		Combinations:  len(combos),
		Results:       make([]DrawResult, 0, len(testDraws)),
		BestHistogram: make(map[int]int),
	}

	totalBest := 0
	for i, d := range testDraws {
		best, sum := 0, 0
		for _, c := range combos {
			m := Matches(c, d)
			sum += m
			best = max(best, m)
		}
		label := labels[i]
		if label == "" {
			label = d.String()
		}
		mean := 0.0
		if len(combos) > 0 {
			mean = float64(sum) / float64(len(combos))
		}
		report.Results = append(report.Results, DrawResult{Draw: label, BestMatch: best, MeanMatch: mean})
		report.BestHistogram[best]++
		totalBest += best
	}
	report.MeanBest = float64(totalBest) / float64(len(testDraws))

	return report, nil
}

// TopBest returns up to n results with the highest best match, ties kept in
// test-set order.
func (r *Report) TopBest(n int) []DrawResult {
	sorted := slices.Clone(r.Results)
	slices.SortStableFunc(sorted, func(a, b DrawResult) int {
		return cmp.Compare(b.BestMatch, a.BestMatch)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
