package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCombinationStoreContract runs a suite of tests to verify that a
// CombinationStore implementation adheres to the interface contract.
func RunCombinationStoreContract(t *testing.T, store CombinationStore) {
	t.Helper()
	ctx := context.Background()
	batchID := "contract-test-batch-" + time.Now().Format("20060102150405")

	newBatch := func(id string) *domain.Batch {
		return &domain.Batch{
			ID:         id,
			CreatedAt:  time.Date(2025, 6, 6, 20, 0, 0, 0, time.UTC),
			Domain:     domain.Euromillions,
			TargetSize: 5,
			RandSeed:   42,
			Combinations: []domain.Combination{
				domain.NewCombination([]int{1, 8, 13, 21, 34}),
				domain.NewCombination([]int{2, 13, 21, 34, 47}),
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		batch := newBatch(batchID)
		require.NoError(t, store.Save(ctx, batchID, batch), "Save should not return error")

		loaded, err := store.Load(ctx, batchID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, batch.ID, loaded.ID)
		assert.Equal(t, batch.Domain, loaded.Domain)
		assert.Equal(t, batch.TargetSize, loaded.TargetSize)
		assert.Equal(t, batch.RandSeed, loaded.RandSeed)
		assert.True(t, batch.CreatedAt.Equal(loaded.CreatedAt))
		require.Len(t, loaded.Combinations, 2)
		for i := range batch.Combinations {
			assert.Equal(t, batch.Combinations[i].Numbers(), loaded.Combinations[i].Numbers())
		}
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		batch := newBatch(batchID)
		require.NoError(t, store.Save(ctx, batchID, batch))

		batch.Combinations[0] = domain.NewCombination([]int{5, 6, 7, 8, 9})

		loaded, err := store.Load(ctx, batchID)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 8, 13, 21, 34}, loaded.Combinations[0].Numbers())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+batchID)
		assert.ErrorIs(t, err, domain.ErrBatchNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, batchID, newBatch(batchID)))

		require.NoError(t, store.Delete(ctx, batchID), "Delete should not return error")

		_, err := store.Load(ctx, batchID)
		assert.ErrorIs(t, err, domain.ErrBatchNotFound, "Load after Delete should return ErrBatchNotFound")

		assert.NoError(t, store.Delete(ctx, batchID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := batchID + "-1"
		id2 := batchID + "-2"
		require.NoError(t, store.Save(ctx, id1, newBatch(id1)))
		require.NoError(t, store.Save(ctx, id2, newBatch(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
