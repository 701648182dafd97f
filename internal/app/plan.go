package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"debdl/internal/adapters"
	"debdl/internal/core"
	"debdl/internal/policies"
	"debdl/internal/types"
)

// Plan resolves each requested target against the repository index and
// writes a plan.yaml and install.list per target under the output
// directory. A target that resolves to nothing (unknown package) produces
// an empty plan entry and a diagnostic rather than an error.
func (s Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	targets, outputDir, err := normalizePlanInputs(req.Targets, req.OutputDir)
	if err != nil {
		return PlanResult{}, err
	}

	index, err := s.loadIndex(ctx)
	if err != nil {
		return PlanResult{}, err
	}

	result := PlanResult{}
	for _, target := range targets {
		plan, err := s.planTarget(ctx, index, target, outputDir)
		if err != nil {
			return PlanResult{}, err
		}
		result.Plans = append(result.Plans, plan)
	}
	return result, nil
}

func (s Service) planTarget(ctx context.Context, index types.PackageIndex, target string, outputDir string) (TargetPlan, error) {
	resolver := core.NewClosureResolver(index, policies.DefaultResolutionPolicy())
	closure, err := resolver.Resolve(ctx, target)
	if err != nil {
		return TargetPlan{}, err
	}

	targetDir := filepath.Join(outputDir, target)
	plan := TargetPlan{Target: target, OutputDir: targetDir}
	if closure.Len() == 0 {
		log.Ctx(ctx).Warn().Str("target", target).Msg("nothing to install")
		return plan, nil
	}

	planner := core.NewInstallOrderPlanner(index)
	plan.Resolved = closure.Names()
	plan.InstallOrder = planner.Order(closure)

	writer := adapters.NewPlanFileAdapter(targetDir)
	doc := types.InstallPlan{
		Target:       target,
		Mirror:       s.Config.Mirror,
		Distribution: s.Config.Distribution,
		Architecture: s.Config.Architecture,
		CreatedAt:    s.now().Format(time.RFC3339),
		Resolved:     plan.Resolved,
		InstallOrder: plan.InstallOrder,
	}
	if err := writer.WritePlan(doc); err != nil {
		return TargetPlan{}, err
	}
	if err := writer.WriteInstallList(target, plan.InstallOrder); err != nil {
		return TargetPlan{}, err
	}

	log.Ctx(ctx).Info().
		Str("target", target).
		Int("resolved", len(plan.Resolved)).
		Msg("install plan written")
	return plan, nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

func normalizePlanInputs(targets []string, outputDir string) ([]string, string, error) {
	var cleaned []string
	for _, target := range targets {
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		cleaned = append(cleaned, target)
	}
	if len(cleaned) == 0 {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one target package is required")
	}
	outputDir = strings.TrimSpace(outputDir)
	if outputDir == "" {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	return cleaned, outputDir, nil
}
