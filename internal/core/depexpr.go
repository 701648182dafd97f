package core

import (
	"strings"

	"debdl/internal/types"
)

// ParseDependsField parses a Depends field value such as
//
//	"libc6 (>= 2.29), libgcc1 (>= 1:3.0) | libgcc-s1"
//
// into its alternative groups: groups are comma-separated, candidates
// within a group are pipe-separated, and each candidate is reduced to its
// leading whitespace-delimited token, discarding version constraints and
// any other qualifiers. Empty groups from stray commas are skipped, as are
// empty candidate tokens. The parser never fails; malformed input degrades
// to whatever names can be extracted.
func ParseDependsField(value string) []types.DependencyGroup {
	var groups []types.DependencyGroup
	for _, rawGroup := range strings.Split(value, ",") {
		if strings.TrimSpace(rawGroup) == "" {
			continue
		}
		var alternatives []string
		for _, candidate := range strings.Split(rawGroup, "|") {
			tokens := strings.Fields(candidate)
			if len(tokens) == 0 {
				continue
			}
			alternatives = append(alternatives, tokens[0])
		}
		if len(alternatives) == 0 {
			continue
		}
		groups = append(groups, types.DependencyGroup{Alternatives: alternatives})
	}
	return groups
}
