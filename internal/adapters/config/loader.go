// Package config provides the configuration loader for fab.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

var validTargetNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// DiscoverRoot walks up from cwd and returns the first directory containing
// fab.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigNotFound.Error()), "cwd", cwd)
	}
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

// Load reads fab.yaml starting from cwd and returns the resolved catalog.
// Configured paths are resolved against the discovered project root.
func (l *Loader) Load(cwd string) (*domain.Catalog, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	fabfile, err := l.readFabfile(root)
	if err != nil {
		return nil, err
	}

	return l.buildCatalog(root, fabfile)
}

// LoadLock reads the dependency lock file for the project containing cwd.
// The lock file name defaults to fab.lock.yaml and can be changed through
// the vendor.lockfile config key.
func (l *Loader) LoadLock(cwd string) (*domain.DependencyLock, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	fabfile, err := l.readFabfile(root)
	if err != nil {
		return nil, err
	}

	lockName := fabfile.Vendor.Lockfile
	if lockName == "" {
		lockName = domain.LockFileName
	}
	lockPath := resolvePath(root, lockName)

	if _, statErr := os.Stat(lockPath); statErr != nil {
		return nil, zerr.With(domain.ErrLockfileNotFound, "path", lockPath)
	}

	var lockfile Lockfile
	if err := readAndUnmarshalYAML(lockPath, &lockfile, domain.ErrLockfileReadFailed, domain.ErrLockfileParseFailed); err != nil {
		return nil, err
	}

	lock := buildLock(&lockfile)
	if err := lock.Validate(); err != nil {
		return nil, err
	}

	return lock, nil
}

func (l *Loader) readFabfile(root string) (*Fabfile, error) {
	var fabfile Fabfile
	configPath := filepath.Join(root, domain.ConfigFileName)
	if err := readAndUnmarshalYAML(configPath, &fabfile, domain.ErrConfigReadFailed, domain.ErrConfigParseFailed); err != nil {
		return nil, err
	}
	return &fabfile, nil
}

func (l *Loader) buildCatalog(root string, fabfile *Fabfile) (*domain.Catalog, error) {
	targets := make(map[string]domain.TargetConfig, len(fabfile.Targets))
	for name, dto := range fabfile.Targets {
		if !validTargetNameRegex.MatchString(name) {
			return nil, zerr.With(domain.ErrInvalidTargetName, "target", name)
		}
		if dto == nil || len(dto.Variants) == 0 {
			return nil, zerr.With(domain.ErrMissingVariants, "target", name)
		}
		// The resource name is spliced into the remote lock command, so it
		// gets the same charset as target names.
		if dto.RigResource != "" && !validTargetNameRegex.MatchString(dto.RigResource) {
			err := zerr.With(domain.ErrInvalidRigResource, "target", name)
			return nil, zerr.With(err, "resource", dto.RigResource)
		}
		targets[name] = domain.TargetConfig{
			Variants:    slices.Clone(dto.Variants),
			RigResource: dto.RigResource,
		}
	}

	features := make(map[string]string, len(fabfile.Features))
	for name, patchPath := range fabfile.Features {
		if patchPath == "" {
			return nil, zerr.With(domain.ErrInvalidFeaturePath, "feature", name)
		}
		features[name] = resolvePath(root, patchPath)
	}

	if fabfile.Rig.Host == "" && (len(fabfile.Rig.FlashCommand) > 0 || len(fabfile.Rig.TestCommand) > 0) {
		l.Logger.Warn("rig commands configured without a rig host, hardware sessions will be unavailable")
	}

	return &domain.Catalog{
		BuildDir:     resolvePathOrDefault(root, fabfile.Build.Dir, domain.DefaultBuildPath()),
		VendorDir:    resolvePathOrDefault(root, fabfile.Vendor.Dir, domain.DefaultVendorPath()),
		DistDir:      resolvePathOrDefault(root, fabfile.Build.Dist, domain.DefaultDistPath()),
		SynthCommand: slices.Clone(fabfile.SynthCommand),
		Targets:      targets,
		Features:     features,
		Rig: domain.RigSpec{
			Host:          fabfile.Rig.Host,
			SettleSeconds: fabfile.Rig.SettleSeconds,
			FlashCommand:  slices.Clone(fabfile.Rig.FlashCommand),
			TestCommand:   slices.Clone(fabfile.Rig.TestCommand),
		},
	}, nil
}

func buildLock(dto *Lockfile) *domain.DependencyLock {
	dependencies := make(map[string]domain.LockSource, len(dto.Dependencies))
	for key, src := range dto.Dependencies {
		dependencies[key] = lockSource(src)
	}

	overrides := make(map[string]domain.LockSource, len(dto.Overrides))
	for key, src := range dto.Overrides {
		overrides[key] = lockSource(src)
	}

	return &domain.DependencyLock{
		Version:      dto.Version,
		Dependencies: dependencies,
		Overrides:    overrides,
	}
}

func lockSource(dto *SourceDTO) domain.LockSource {
	if dto == nil {
		return domain.LockSource{}
	}
	return domain.LockSource{URL: dto.URL, SHA256: dto.SHA256}
}

// resolvePathOrDefault resolves configured against root, falling back to
// fallback when configured is empty.
func resolvePathOrDefault(root, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	return resolvePath(root, configured)
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T, readErr, parseErr error) error {
	// #nosec G304 -- path is resolved from the discovered project root
	raw, err := os.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, readErr.Error())
	}

	if unmarshalErr := yaml.Unmarshal(raw, target); unmarshalErr != nil {
		return zerr.Wrap(unmarshalErr, parseErr.Error())
	}

	return nil
}
