package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"debdl/internal/core"
)

// Inspect returns the index record for one package and optionally checks
// its version against a requested minimum using Debian version comparison.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	name := strings.TrimSpace(req.Package)
	if name == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}

	index, err := s.loadIndex(ctx)
	if err != nil {
		return InspectResult{}, err
	}
	record, ok := index[name]
	if !ok {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("package %s not found in index", name))
	}

	result := InspectResult{
		Name:    name,
		Version: record.Version(),
		Fields:  record.Fields,
	}
	minVersion := strings.TrimSpace(req.MinVersion)
	if minVersion != "" {
		satisfied, err := core.DebVersionAtLeast(record.Version(), minVersion)
		if err != nil {
			return InspectResult{}, err
		}
		result.Checked = true
		result.Satisfied = satisfied
	}
	return result, nil
}
