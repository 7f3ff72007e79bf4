package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
)

// Store implements ports.CombinationStore using the local filesystem.
// It stores each batch as a JSON file in a configured directory.
type Store struct {
	BasePath string
}

// NewStore creates a new Store with the given base path.
// If basePath is empty, it defaults to ".markov/batches".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".markov", "batches")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(batchID string) (string, error) {
	if batchID == "" {
		return "", fmt.Errorf("batchID cannot be empty")
	}
	if strings.ContainsAny(batchID, `/\`) || batchID == "." || batchID == ".." {
		return "", fmt.Errorf("invalid batchID %q", batchID)
	}
	return filepath.Join(s.BasePath, batchID+".json"), nil
}

// Save persists the batch to a JSON file atomically.
// It writes to a temporary file first, syncs it, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, batchID string, batch *domain.Batch) error {
	destPath, err := s.path(batchID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure batch directory: %w", err)
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}

	// 1. Create Temp File in the same directory (atomic rename needs one filesystem)
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+batchID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	// 2. Write and fsync
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 3. Close (cannot rename an open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 4. Rename. On Windows os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing batch file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to batch file: %w", err)
	}

	return nil
}

// Load retrieves the batch from its JSON file.
func (s *Store) Load(ctx context.Context, batchID string) (*domain.Batch, error) {
	filePath, err := s.path(batchID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch domain.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch: %w", err)
	}
	return &batch, nil
}

// Delete removes the batch file.
func (s *Store) Delete(ctx context.Context, batchID string) error {
	filePath, err := s.path(batchID)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete batch file: %w", err)
	}
	return nil
}

// List returns all stored batch IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}
