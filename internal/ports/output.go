package ports

import "debdl/internal/types"

// PlanWriterPort persists planning results for consumption by other tools.
type PlanWriterPort interface {
	WritePlan(plan types.InstallPlan) error
	WriteInstallList(target string, order []string) error
}

// ScriptWriterPort emits the installation shell script for an ordered set
// of packages whose archives live in debsDir. Returns the script path.
type ScriptWriterPort interface {
	WriteInstallScript(index types.PackageIndex, order []string, debsDir string) (string, error)
}
