package memory

import (
	"context"
	"slices"

	"github.com/aretw0/markov/pkg/draw"
)

// History implements ports.HistorySource over a fixed slice of records.
type History struct {
	records []draw.Record
}

// NewHistory creates a history source serving records.
func NewHistory(records ...draw.Record) *History {
	return &History{records: slices.Clone(records)}
}

// FromNumbers builds a history from plain integer rows, labelled by position.
func FromNumbers(rows ...[]int) *History {
	records := make([]draw.Record, len(rows))
	for i, row := range rows {
		records[i] = draw.NewRecord("", row...)
	}
	return &History{records: records}
}

// Load returns a copy of the records.
func (h *History) Load(ctx context.Context) ([]draw.Record, error) {
	return slices.Clone(h.records), nil
}
