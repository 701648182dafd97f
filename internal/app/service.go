package app

import (
	"context"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"debdl/internal/adapters"
	"debdl/internal/core"
	"debdl/internal/ports"
	"debdl/internal/types"
)

type Service struct {
	Config      types.MirrorConfig
	IndexSource ports.IndexSourcePort
	IndexCache  ports.IndexCachePort
	Archives    ports.ArchiveFetcherPort
	Clock       func() time.Time
}

// ServiceOptions tunes the default adapters. Zero values select defaults.
type ServiceOptions struct {
	CacheDir         string
	DownloadWorkers  int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func NewService(cfg types.MirrorConfig, opts ServiceOptions) Service {
	cfg = cfg.Normalized()
	cacheDir := opts.CacheDir
	if cacheDir == "" {
		cacheDir = adapters.DefaultCacheDir()
	}
	cache := adapters.NewIndexCacheFileAdapter(cacheDir, cfg)
	source := adapters.NewIndexHTTPAdapter(cfg, opts.HTTPTimeoutSec, opts.HTTPRetries, opts.HTTPRetryDelayMs)
	return Service{
		Config:      cfg,
		IndexSource: adapters.NewCachedIndexSource(cache, source),
		IndexCache:  cache,
		Archives:    adapters.NewArchiveHTTPAdapter(cfg, opts.DownloadWorkers, opts.HTTPTimeoutSec, opts.HTTPRetries, opts.HTTPRetryDelayMs),
		Clock:       time.Now,
	}
}

// loadIndex fetches the index text for the configured coordinates and
// parses it into a PackageIndex.
func (s Service) loadIndex(ctx context.Context) (types.PackageIndex, error) {
	assert.NotEmpty(ctx, s.Config.Mirror, "mirror must be configured")
	assert.NotEmpty(ctx, s.Config.Distribution, "distribution must be configured")
	text, err := s.IndexSource.FetchIndex(ctx)
	if err != nil {
		return nil, err
	}
	index := core.ParseIndex(text)
	log.Ctx(ctx).Debug().Int("packages", len(index)).Msg("package index loaded")
	return index, nil
}
