package app

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"debdl/internal/adapters"
)

const debsSubdir = "debs"

// Fetch plans each target, downloads the resolved archives, and emits an
// install script per target. This is the full pipeline: a target directory
// afterwards contains plan.yaml, install.list, debs/ and install.sh.
func (s Service) Fetch(ctx context.Context, req FetchRequest) (FetchResult, error) {
	targets, outputDir, err := normalizePlanInputs(req.Targets, req.OutputDir)
	if err != nil {
		return FetchResult{}, err
	}

	index, err := s.loadIndex(ctx)
	if err != nil {
		return FetchResult{}, err
	}

	result := FetchResult{}
	for _, target := range targets {
		plan, err := s.planTarget(ctx, index, target, outputDir)
		if err != nil {
			return FetchResult{}, err
		}
		result.Plans = append(result.Plans, plan)
		if len(plan.Resolved) == 0 {
			continue
		}

		debsDir := filepath.Join(plan.OutputDir, debsSubdir)
		archives, err := s.Archives.FetchArchives(ctx, index, plan.Resolved, debsDir)
		if err != nil {
			return FetchResult{}, err
		}
		result.Archives = append(result.Archives, archives...)

		scripts := adapters.NewScriptFileAdapter(plan.OutputDir)
		scriptPath, err := scripts.WriteInstallScript(index, plan.InstallOrder, debsSubdir)
		if err != nil {
			return FetchResult{}, err
		}
		result.Scripts = append(result.Scripts, scriptPath)

		log.Ctx(ctx).Info().
			Str("target", target).
			Int("archives", len(archives)).
			Str("script", scriptPath).
			Msg("fetch completed")
	}
	return result, nil
}
