package ports

import (
	"context"

	"github.com/aretw0/markov/pkg/domain"
)

// CombinationStore defines the interface for persisting generated batches.
type CombinationStore interface {
	// Save persists the batch under batchID, replacing any previous value.
	Save(ctx context.Context, batchID string, batch *domain.Batch) error

	// Load retrieves the batch stored under batchID.
	// Returns domain.ErrBatchNotFound if the batch does not exist.
	Load(ctx context.Context, batchID string) (*domain.Batch, error)

	// Delete removes the batch. Deleting a missing batch is not an error.
	Delete(ctx context.Context, batchID string) error

	// List returns the IDs of every stored batch.
	List(ctx context.Context) ([]string, error)
}
