package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Update discards the cached index and fetches a fresh copy, reporting how
// many package records the new index carries.
func (s Service) Update(ctx context.Context, _ UpdateRequest) (UpdateResult, error) {
	if err := s.IndexCache.Invalidate(); err != nil {
		return UpdateResult{}, err
	}
	index, err := s.loadIndex(ctx)
	if err != nil {
		return UpdateResult{}, err
	}
	log.Ctx(ctx).Info().Int("packages", len(index)).Msg("package index refreshed")
	return UpdateResult{Packages: len(index)}, nil
}
