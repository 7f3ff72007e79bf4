package table_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_IsACopy(t *testing.T) {
	tbl := table.NewBuilder().Build(context.Background(), mustDraws(t, domain.Euromillions,
		[]int{1, 2, 3, 4, 5},
	))

	snap := tbl.Snapshot(2)
	assert.Equal(t, map[int]int{3: 1}, snap.Direct)
	assert.Equal(t, map[int]int{4: 1}, snap.Position)
	assert.Equal(t, map[table.Pair]map[int]int{
		{First: 1, Second: 2}: {3: 1},
		{First: 2, Second: 3}: {4: 1},
	}, snap.Combination)

	snap.Direct[3] = 100
	snap.Combination[table.Pair{First: 1, Second: 2}][3] = 100
	assert.Equal(t, 1, tbl.Direct.Get(2, 3))
	assert.Equal(t, 1, tbl.Combination.Get(table.Pair{First: 1, Second: 2}, 3))
}

func TestSnapshot_UnknownNumber(t *testing.T) {
	snap := table.New().Snapshot(42)
	assert.Empty(t, snap.Direct)
	assert.NotNil(t, snap.Direct)
	assert.Empty(t, snap.Combination)
}

func TestSnapshot_JSON(t *testing.T) {
	tbl := table.NewBuilder().Build(context.Background(), mustDraws(t, domain.Euromillions,
		[]int{1, 2, 3, 4, 5},
	))

	data, err := json.Marshal(tbl.Snapshot(1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":1,"direct":{"2":1},"position":{"3":1},"combination":{"1,2":{"3":1}}}`, string(data))

	var back table.Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, map[int]int{3: 1}, back.Combination[table.Pair{First: 1, Second: 2}])
}

func TestMostLikelyNext(t *testing.T) {
	tbl := table.NewBuilder().Build(context.Background(), mustDraws(t, domain.Euromillions,
		[]int{1, 9, 20, 30, 40},
		[]int{1, 5, 20, 30, 40},
		[]int{1, 5, 21, 30, 40},
		[]int{1, 9, 21, 31, 40},
	))

	// 1 -> 5 twice, 1 -> 9 twice: the smaller successor wins the tie.
	next, ok := tbl.MostLikelyNext(1, table.LevelDirect)
	require.True(t, ok)
	assert.Equal(t, 5, next)

	// 1 -> 20 twice, 1 -> 21 twice at position level.
	next, ok = tbl.MostLikelyNext(1, table.LevelPosition)
	require.True(t, ok)
	assert.Equal(t, 20, next)

	_, ok = tbl.MostLikelyNext(40, table.LevelDirect)
	assert.False(t, ok)

	_, ok = tbl.MostLikelyNext(1, table.Level("combination"))
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	l, err := table.ParseLevel("Position")
	require.NoError(t, err)
	assert.Equal(t, table.LevelPosition, l)

	l, err = table.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, table.LevelDirect, l)

	_, err = table.ParseLevel("sideways")
	assert.ErrorIs(t, err, table.ErrUnknownLevel)
}

func TestPair_Text(t *testing.T) {
	var p table.Pair
	require.NoError(t, p.UnmarshalText([]byte("4, 17")))
	assert.Equal(t, table.Pair{First: 4, Second: 17}, p)
	assert.Equal(t, "(4, 17)", p.String())
	assert.Error(t, p.UnmarshalText([]byte("4")))
	assert.Error(t, p.UnmarshalText([]byte("a,b")))
}
