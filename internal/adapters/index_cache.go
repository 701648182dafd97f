package adapters

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"debdl/internal/ports"
	"debdl/internal/types"
)

// IndexCacheFileAdapter stores decompressed index text on disk, one file
// per mirror/distribution/architecture combination.
type IndexCacheFileAdapter struct {
	Dir string
	Key string
}

func NewIndexCacheFileAdapter(dir string, cfg types.MirrorConfig) IndexCacheFileAdapter {
	return IndexCacheFileAdapter{Dir: dir, Key: cfg.Normalized().CacheKey()}
}

// DefaultCacheDir returns the debdl cache directory under XDG_CACHE_HOME,
// falling back to ~/.cache.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "debdl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".debdl-cache")
	}
	return filepath.Join(home, ".cache", "debdl")
}

func (a IndexCacheFileAdapter) path() string {
	return filepath.Join(a.Dir, a.Key+".Packages")
}

func (a IndexCacheFileAdapter) Load() (string, bool, error) {
	data, err := os.ReadFile(a.path())
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read cached index").
			WithCause(err)
	}
	return string(data), true, nil
}

func (a IndexCacheFileAdapter) Store(text string) error {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create cache directory").
			WithCause(err)
	}
	if err := os.WriteFile(a.path(), []byte(text), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write cached index").
			WithCause(err)
	}
	return nil
}

func (a IndexCacheFileAdapter) Invalidate() error {
	if err := os.Remove(a.path()); err != nil && !os.IsNotExist(err) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove cached index").
			WithCause(err)
	}
	return nil
}

// CachedIndexSource serves index text from the cache when present and
// falls back to the wrapped source, populating the cache on the way back.
// Cache write failures are logged, not fatal: a fetched index is still an
// index.
type CachedIndexSource struct {
	Cache  ports.IndexCachePort
	Source ports.IndexSourcePort
}

func NewCachedIndexSource(cache ports.IndexCachePort, source ports.IndexSourcePort) CachedIndexSource {
	return CachedIndexSource{Cache: cache, Source: source}
}

func (s CachedIndexSource) FetchIndex(ctx context.Context) (string, error) {
	text, ok, err := s.Cache.Load()
	if err != nil {
		return "", err
	}
	if ok {
		log.Ctx(ctx).Debug().Msg("using cached Packages index")
		return text, nil
	}
	log.Ctx(ctx).Info().Msg("downloading Packages index")
	text, err = s.Source.FetchIndex(ctx)
	if err != nil {
		return "", err
	}
	if err := s.Cache.Store(text); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to cache Packages index")
	}
	return text, nil
}

var _ ports.IndexCachePort = IndexCacheFileAdapter{}
var _ ports.IndexSourcePort = CachedIndexSource{}
