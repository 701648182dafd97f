package core

import (
	"debdl/internal/types"
)

// InstallOrderPlanner linearizes a resolved closure so that every
// first-alternative dependency of a package that is itself in the closure
// appears before that package.
type InstallOrderPlanner struct {
	Index types.PackageIndex
}

func NewInstallOrderPlanner(index types.PackageIndex) InstallOrderPlanner {
	return InstallOrderPlanner{Index: index}
}

// Order returns a permutation of closure in dependency-before-dependent
// order. The traversal is a depth-first post-order restricted to closure
// members, with the outer iteration following the closure's insertion
// order; ties between independent packages are therefore decided by that
// order and nothing else.
//
// Cycles that survive into the closure are not re-detected here: members
// of such a cycle are emitted in visit order, and one of the cyclic edges
// will not be honored by the result.
func (p InstallOrderPlanner) Order(closure *types.PackageSet) []string {
	visited := map[string]struct{}{}
	order := make([]string, 0, closure.Len())

	type frame struct {
		name     string
		expanded bool
	}

	for _, member := range closure.Names() {
		if _, ok := visited[member]; ok {
			continue
		}
		stack := []frame{{name: member}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if top.expanded {
				order = append(order, top.name)
				continue
			}
			if _, ok := visited[top.name]; ok {
				continue
			}
			visited[top.name] = struct{}{}

			stack = append(stack, frame{name: top.name, expanded: true})

			record, ok := p.Index[top.name]
			if !ok {
				continue
			}
			depends, ok := record.Depends()
			if !ok {
				continue
			}
			groups := ParseDependsField(depends)
			for i := len(groups) - 1; i >= 0; i-- {
				first := groups[i].First()
				if first == "" || !closure.Contains(first) {
					continue
				}
				stack = append(stack, frame{name: first})
			}
		}
	}

	return order
}
