package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/markov/pkg/domain"
)

// Store implements ports.CombinationStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Batch
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Batch),
	}
}

// copyBatch isolates stored batches from caller mutation. Combinations are
// immutable, so copying the slice is enough.
func copyBatch(b *domain.Batch) *domain.Batch {
	c := *b
	c.Combinations = slices.Clone(b.Combinations)
	return &c
}

// Save persists the batch in memory.
func (s *Store) Save(ctx context.Context, batchID string, batch *domain.Batch) error {
	copied := copyBatch(batch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[batchID] = copied
	return nil
}

// Load retrieves the batch from memory.
func (s *Store) Load(ctx context.Context, batchID string) (*domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, ok := s.data[batchID]
	if !ok {
		return nil, domain.ErrBatchNotFound
	}
	return copyBatch(batch), nil
}

// Delete removes the batch.
func (s *Store) Delete(ctx context.Context, batchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, batchID)
	return nil
}

// List returns stored batch IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
