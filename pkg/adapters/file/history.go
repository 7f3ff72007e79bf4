package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/markov/pkg/draw"
	"gopkg.in/yaml.v3"
)

// historyFile is the on-disk layout: a top-level "draws" list of rows.
// Rows are decoded loosely so both {"numbers": [...]} and the flat
// n1..nN column layout are accepted.
type historyFile struct {
	Draws []map[string]any `yaml:"draws" json:"draws"`
}

// HistoryLoader implements ports.HistorySource over a YAML or JSON file.
type HistoryLoader struct {
	Path string
}

// NewHistoryLoader creates a loader for path. The format is chosen by
// extension: ".json" is JSON, anything else is YAML.
func NewHistoryLoader(path string) *HistoryLoader {
	return &HistoryLoader{Path: path}
}

// Load reads and decodes every row of the history file.
func (l *HistoryLoader) Load(ctx context.Context) ([]draw.Record, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return ParseHistory(data, filepath.Ext(l.Path))
}

// ParseHistory decodes history content. ext selects the format as in NewHistoryLoader.
func ParseHistory(data []byte, ext string) ([]draw.Record, error) {
	var hf historyFile
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &hf); err != nil {
			return nil, fmt.Errorf("failed to parse history json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &hf); err != nil {
			return nil, fmt.Errorf("failed to parse history yaml: %w", err)
		}
	}

	records := make([]draw.Record, 0, len(hf.Draws))
	for i, row := range hf.Draws {
		rec, err := draw.DecodeRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
