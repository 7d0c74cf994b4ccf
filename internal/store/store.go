// Package store provides the durable two-container document store: a raw
// container holding every ingested record as received, and a processed
// container holding the subset that matched a rule, tagged with its
// classification. Both containers are partitioned by platform.
package store

import (
	"context"
	"errors"

	"github.com/jonesrussell/brandquery/internal/domain"
)

// ErrConflict is returned by PutProcessed when a record with the same id
// already exists in the processed container. Callers on the ingestion
// drain path treat this as success: the record is already durable.
var ErrConflict = errors.New("store: duplicate id")

// Store is the durable document store used by the ingestion pipeline.
// Implementations must treat a duplicate id on PutProcessed as a conflict
// rather than an error, per ErrConflict.
type Store interface {
	PutRaw(ctx context.Context, rec domain.IngestRecord) error
	PutProcessed(ctx context.Context, rec domain.ProcessedRecord) error

	ListRaw(ctx context.Context, platform string, offset, limit int) ([]domain.IngestRecord, error)
	ListProcessed(ctx context.Context, platform string, offset, limit int) ([]domain.ProcessedRecord, error)

	Close() error
}

// DefaultListLimit caps page size when a caller passes limit <= 0.
const DefaultListLimit = 50
