package ports

import (
	"context"

	"github.com/aretw0/markov/pkg/draw"
)

// HistorySource supplies the raw records a transition table is built from.
type HistorySource interface {
	// Load returns every available record. Records are validated later by the
	// normalizer, so sources must not drop malformed rows on their own.
	Load(ctx context.Context) ([]draw.Record, error)
}
