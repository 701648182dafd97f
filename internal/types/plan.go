package types

// InstallPlan is the persisted result of planning one target: the resolved
// closure in resolution order and the install order derived from it.
type InstallPlan struct {
	Target       string   `yaml:"target"`
	Mirror       string   `yaml:"mirror"`
	Distribution string   `yaml:"dist"`
	Architecture string   `yaml:"architecture"`
	CreatedAt    string   `yaml:"created_at"`
	Resolved     []string `yaml:"resolved"`
	InstallOrder []string `yaml:"install_order"`
}
