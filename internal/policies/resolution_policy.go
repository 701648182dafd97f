package policies

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// AlternativePolicy controls which candidate of a dependency group becomes
// an edge during resolution.
type AlternativePolicy string

// CyclePolicy controls what happens when resolution revisits a package that
// is already on the active traversal path.
type CyclePolicy string

const (
	// AlternativeFirst follows only the first listed candidate of each
	// group. Remaining alternatives are ignored even when the first one is
	// absent from the index; there is no feasibility check or backtracking.
	AlternativeFirst AlternativePolicy = "first"

	// CycleCut drops the back edge silently: the revisited package is left
	// exactly as it was and no diagnostic is raised.
	CycleCut CyclePolicy = "cut"
)

// ResolutionPolicy names the behaviors the resolver applies at choice
// points. Today each knob has a single valid value; the values exist so
// that the behaviors are stated contracts rather than accidents of the
// traversal code.
type ResolutionPolicy struct {
	Alternatives AlternativePolicy
	Cycles       CyclePolicy
}

func DefaultResolutionPolicy() ResolutionPolicy {
	return ResolutionPolicy{
		Alternatives: AlternativeFirst,
		Cycles:       CycleCut,
	}
}

// Validate rejects policy values the resolver does not implement.
func (p ResolutionPolicy) Validate() error {
	if p.Alternatives != AlternativeFirst {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported alternative policy: %q", p.Alternatives))
	}
	if p.Cycles != CycleCut {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported cycle policy: %q", p.Cycles))
	}
	return nil
}
