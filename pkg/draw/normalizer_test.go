package draw_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_AcceptsIntegerKinds(t *testing.T) {
	n := draw.NewNormalizer(domain.Euromillions)
	rec := draw.Record{
		ID:     "mixed",
		Values: []any{int64(47), 13.0, json.Number("2"), " 21 ", uint8(34)},
	}

	d, err := n.Normalize(rec)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 13, 21, 34, 47}, d.Numbers())
}

func TestNormalize_Rejects(t *testing.T) {
	n := draw.NewNormalizer(domain.Euromillions)

	tests := []struct {
		name   string
		values []any
	}{
		{"wrong arity", []any{1, 2, 3}},
		{"fractional float", []any{1, 2, 3, 4, 5.5}},
		{"non numeric string", []any{1, 2, 3, 4, "five"}},
		{"bool", []any{1, 2, 3, 4, true}},
		{"out of range", []any{1, 2, 3, 4, 60}},
		{"repeated", []any{1, 2, 3, 4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(draw.Record{ID: "bad", Values: tt.values})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDrawFormat)

			var invalid *draw.InvalidDrawError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, "bad", invalid.RecordID)
		})
	}
}

func TestNormalizeAll_FailsFastWithIndex(t *testing.T) {
	n := draw.NewNormalizer(domain.Euromillions)
	records := []draw.Record{
		draw.NewRecord("ok", 1, 2, 3, 4, 5),
		draw.NewRecord("broken", 1, 2, 3),
		draw.NewRecord("never-reached", 1, 2, 3, 4, 5),
	}

	_, err := n.NormalizeAll(records)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDrawFormat)
	assert.Contains(t, err.Error(), "record 1")
	assert.Contains(t, err.Error(), "broken")
}

func TestDecodeRecord(t *testing.T) {
	rec, err := draw.DecodeRecord(map[string]any{
		"id":      1234,
		"date":    "2025-06-06",
		"numbers": []any{1.0, 8.0, 13.0, 21.0, 34.0},
	})
	require.NoError(t, err)

	assert.Equal(t, "1234", rec.ID)
	assert.Equal(t, time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Len(t, rec.Values, 5)

	d, err := draw.NewNormalizer(domain.Euromillions).Normalize(rec)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 8, 13, 21, 34}, d.Numbers())
}

func TestDecodeRecord_FlatColumns(t *testing.T) {
	rec, err := draw.DecodeRecord(map[string]any{
		"date": "2024-01-02",
		"n2":   13,
		"n1":   5,
		"n3":   21,
		"n5":   47,
		"n4":   29,
		"s1":   3,
	})
	require.NoError(t, err)
	assert.Equal(t, []any{5, 13, 21, 29, 47}, rec.Values)
	assert.Equal(t, "2024-01-02", rec.Label())
}

func TestDecodeRecord_BadDate(t *testing.T) {
	_, err := draw.DecodeRecord(map[string]any{
		"date":    "yesterday",
		"numbers": []any{1, 2, 3, 4, 5},
	})
	assert.Error(t, err)
}
