package storage

import (
	"context"

	"docmark/internal/extractor"
)

// ExtractionCache persists per-file extraction results so that unchanged
// files are not parsed again.
type ExtractionCache interface {
	// Lookup returns the cached result for path when it was stored with hash.
	Lookup(ctx context.Context, path, hash string) (*extractor.File, bool, error)

	// Store upserts the result of one file under its content hash.
	Store(ctx context.Context, hash string, f *extractor.File) error

	// Prune drops entries of dir whose path is not listed in keep.
	Prune(ctx context.Context, dir string, keep []string) (int64, error)

	Close() error
}
