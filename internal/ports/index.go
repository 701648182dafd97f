package ports

import (
	"context"
)

// IndexSourcePort supplies the raw Packages index text for the configured
// repository coordinates. Implementations own retrieval and decompression;
// the core only ever sees plain text.
type IndexSourcePort interface {
	FetchIndex(ctx context.Context) (string, error)
}

// IndexCachePort is the on-disk cache for fetched index text.
type IndexCachePort interface {
	// Load returns the cached text and whether a cache entry existed.
	Load() (string, bool, error)
	Store(text string) error
	Invalidate() error
}
