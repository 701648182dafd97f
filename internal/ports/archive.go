package ports

import (
	"context"

	"debdl/internal/types"
)

// ArchiveFetcherPort downloads the package archives for a set of resolved
// package names into destDir, using each record's Filename field. Missing
// records, missing Filename fields, and individual download failures are
// non-fatal: implementations skip them with a diagnostic and report only
// the archives that were actually fetched.
type ArchiveFetcherPort interface {
	FetchArchives(ctx context.Context, index types.PackageIndex, names []string, destDir string) ([]string, error)
}
