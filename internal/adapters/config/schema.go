package config

// Fabfile represents the structure of the fab.yaml configuration file.
type Fabfile struct {
	Version      string                `yaml:"version"`
	Build        BuildDTO              `yaml:"build"`
	Vendor       VendorDTO             `yaml:"vendor"`
	Rig          RigDTO                `yaml:"rig"`
	SynthCommand []string              `yaml:"synthCommand"`
	Targets      map[string]*TargetDTO `yaml:"targets"`
	Features     map[string]string     `yaml:"features"`
}

// BuildDTO configures where build trees and collected artifacts live.
type BuildDTO struct {
	Dir  string `yaml:"dir"`
	Dist string `yaml:"dist"`
}

// VendorDTO configures the firmware dependency cache.
type VendorDTO struct {
	Lockfile string `yaml:"lockfile"`
	Dir      string `yaml:"dir"`
}

// RigDTO describes the shared hardware test rig.
type RigDTO struct {
	Host          string   `yaml:"host"`
	SettleSeconds int      `yaml:"settleSeconds"`
	FlashCommand  []string `yaml:"flashCommand"`
	TestCommand   []string `yaml:"testCommand"`
}

// TargetDTO represents one board entry in the target catalog.
type TargetDTO struct {
	Variants    []string `yaml:"variants"`
	RigResource string   `yaml:"rigResource"`
}

// Lockfile represents the structure of the fab.lock.yaml dependency
// descriptor.
type Lockfile struct {
	Version      int                   `yaml:"version"`
	Dependencies map[string]*SourceDTO `yaml:"dependencies"`
	Overrides    map[string]*SourceDTO `yaml:"overrides"`
}

// SourceDTO pins a single dependency archive.
type SourceDTO struct {
	URL    string `yaml:"url"`
	SHA256 string `yaml:"sha256"`
}
