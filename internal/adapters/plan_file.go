package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"debdl/internal/ports"
	"debdl/internal/types"
)

// PlanFileAdapter writes planning outputs into a per-target directory:
// plan.yaml with the full plan and install.list with one package name per
// line in install order.
type PlanFileAdapter struct {
	Dir string
}

func NewPlanFileAdapter(dir string) PlanFileAdapter {
	return PlanFileAdapter{Dir: dir}
}

func (a PlanFileAdapter) WritePlan(plan types.InstallPlan) error {
	path, err := a.ensurePath("plan.yaml")
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(plan)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal install plan").
			WithCause(err)
	}
	return os.WriteFile(path, data, 0644)
}

func (a PlanFileAdapter) WriteInstallList(target string, order []string) error {
	path, err := a.ensurePath("install.list")
	if err != nil {
		return err
	}
	content := strings.Join(order, "\n")
	if content != "" {
		content += "\n"
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func (a PlanFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("output directory is required for %s", filename))
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.PlanWriterPort = PlanFileAdapter{}
