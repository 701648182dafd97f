package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"debdl/internal/policies"
	"debdl/internal/types"
)

// ClosureResolver computes the transitive dependency closure of a package
// under first-alternative selection: only the first candidate of each
// dependency group contributes an edge, and no feasibility checking or
// backtracking is attempted when that candidate is unavailable.
type ClosureResolver struct {
	Index  types.PackageIndex
	Policy policies.ResolutionPolicy
}

func NewClosureResolver(index types.PackageIndex, policy policies.ResolutionPolicy) ClosureResolver {
	return ClosureResolver{Index: index, Policy: policy}
}

// traversal frames are pushed twice: once to expand a package's edges and
// once, after those edges, to record it in the result set. This keeps the
// post-order of the equivalent recursive walk without recursion.
type closureFrame struct {
	name     string
	expanded bool
}

// Resolve returns the set of packages reachable from root via
// first-alternative edges, in dependency-first insertion order, always
// including root itself when root exists in the index. Packages missing
// from the index produce a warning diagnostic and are left out of the set;
// back edges onto the active traversal path are cut silently per
// CycleCut, which also bounds the walk on cyclic graphs. Each call uses
// fresh state, so equal inputs yield equal results.
func (r ClosureResolver) Resolve(ctx context.Context, root string) (*types.PackageSet, error) {
	if err := r.Policy.Validate(); err != nil {
		return nil, err
	}

	resolved := types.NewPackageSet()
	seen := map[string]struct{}{}
	stack := []closureFrame{{name: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.expanded {
			resolved.Add(top.name)
			continue
		}
		if resolved.Contains(top.name) {
			continue
		}
		if _, active := seen[top.name]; active {
			continue
		}
		seen[top.name] = struct{}{}

		record, ok := r.Index[top.name]
		if !ok {
			log.Ctx(ctx).Warn().
				Str("package", top.name).
				Msg("package not found in index, skipping")
			continue
		}

		stack = append(stack, closureFrame{name: top.name, expanded: true})

		depends, ok := record.Depends()
		if !ok {
			continue
		}
		groups := ParseDependsField(depends)
		// reverse push so the first group is expanded first
		for i := len(groups) - 1; i >= 0; i-- {
			first := groups[i].First()
			if first == "" {
				continue
			}
			stack = append(stack, closureFrame{name: first})
		}
	}

	return resolved, nil
}
