package ports

import "go.trai.ch/fab/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd to find fab.yaml and returns the target catalog.
	Load(cwd string) (*domain.Catalog, error)

	// LoadLock reads the dependency lock file referenced by the catalog.
	// The path is resolved relative to the config file's directory.
	LoadLock(cwd string) (*domain.DependencyLock, error)

	// DiscoverRoot walks up from cwd to find the project root.
	// Returns the directory containing fab.yaml.
	DiscoverRoot(cwd string) (string, error)
}
