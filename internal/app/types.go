package app

type PlanRequest struct {
	Targets   []string
	OutputDir string
}

// TargetPlan is the in-memory planning result for one requested target.
type TargetPlan struct {
	Target       string
	Resolved     []string
	InstallOrder []string
	OutputDir    string
}

type PlanResult struct {
	Plans []TargetPlan
}

type FetchRequest struct {
	Targets   []string
	OutputDir string
}

type FetchResult struct {
	Plans    []TargetPlan
	Archives []string
	Scripts  []string
}

type InspectRequest struct {
	Package    string
	MinVersion string
}

type InspectResult struct {
	Name    string
	Version string
	Fields  map[string]string
	// Checked is true when a minimum version was requested and both
	// versions parsed; Satisfied is only meaningful in that case.
	Checked   bool
	Satisfied bool
}

type UpdateRequest struct{}

type UpdateResult struct {
	Packages int
}
