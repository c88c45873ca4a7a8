package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownTarget is returned when a requested board target is not declared in the config.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrUnknownVariant is returned when a requested variant is not declared for its target.
	ErrUnknownVariant = zerr.New("unknown variant")

	// ErrUnknownFeature is returned when a requested feature has no patch mapping in the config.
	ErrUnknownFeature = zerr.New("unknown feature")

	// ErrInvalidTargetSpec is returned when a target spec does not parse as target or target@variant.
	ErrInvalidTargetSpec = zerr.New("invalid target specification, expected format: target or target@variant")

	// ErrAmbiguousVariant is returned when a target has multiple variants and none was selected.
	ErrAmbiguousVariant = zerr.New("target has multiple variants, specify one with target@variant")

	// ErrNoTargetsSpecified is returned when a command that needs targets is invoked without any.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrOverrideNeedsSingleTarget is returned when per-build overrides are combined with multiple targets.
	ErrOverrideNeedsSingleTarget = zerr.New("build overrides require exactly one target")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find fab.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidTargetName is returned when a declared target name contains invalid characters.
	ErrInvalidTargetName = zerr.New("invalid target name")

	// ErrMissingVariants is returned when a declared target has no variants.
	ErrMissingVariants = zerr.New("target declares no variants")

	// ErrInvalidRigResource is returned when a declared rig resource contains invalid characters.
	ErrInvalidRigResource = zerr.New("invalid rig resource name")

	// ErrInvalidFeaturePath is returned when a declared feature has no patch path.
	ErrInvalidFeaturePath = zerr.New("feature declares no patch path")

	// ErrLockfileNotFound is returned when the dependency lock file cannot be found.
	ErrLockfileNotFound = zerr.New("could not find fab.lock.yaml")

	// ErrLockfileReadFailed is returned when the dependency lock file cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lock file")

	// ErrLockfileParseFailed is returned when the dependency lock file cannot be parsed.
	ErrLockfileParseFailed = zerr.New("failed to parse lock file")

	// ErrUnsupportedLockVersion is returned when the lock file declares a version this tool does not read.
	ErrUnsupportedLockVersion = zerr.New("unsupported lock file version")

	// ErrInvalidLockEntry is returned when a lock entry is missing its source URL or checksum.
	ErrInvalidLockEntry = zerr.New("invalid lock entry, url and sha256 are required")

	// ErrFetchFailed is returned when downloading a locked dependency fails.
	ErrFetchFailed = zerr.New("failed to fetch dependency")

	// ErrIntegrityMismatch is returned when a fetched dependency does not match its locked checksum.
	ErrIntegrityMismatch = zerr.New("dependency checksum mismatch")

	// ErrUnpackFailed is returned when a fetched dependency archive cannot be unpacked.
	ErrUnpackFailed = zerr.New("failed to unpack dependency archive")

	// ErrVendorCacheCreateFailed is returned when the dependency cache directory cannot be created.
	ErrVendorCacheCreateFailed = zerr.New("failed to create vendor cache directory")

	// ErrVendorCacheWriteFailed is returned when writing to the dependency cache fails.
	ErrVendorCacheWriteFailed = zerr.New("failed to write to vendor cache")

	// ErrBuildTreeCreateFailed is returned when a per-target build tree cannot be created.
	ErrBuildTreeCreateFailed = zerr.New("failed to create build tree")

	// ErrPatchFailed is returned when applying a feature patch to the build tree fails.
	ErrPatchFailed = zerr.New("failed to apply feature patch")

	// ErrSynthesisFailed is returned when the synthesis tool exits with a non-zero status.
	ErrSynthesisFailed = zerr.New("synthesis failed")

	// ErrSynthesisLogMissing is returned when the synthesis log cannot be read after a run.
	ErrSynthesisLogMissing = zerr.New("failed to read synthesis log")

	// ErrConstraintViolation is returned when the synthesis log reports unmet timing constraints.
	ErrConstraintViolation = zerr.New("timing constraints not met")

	// ErrMissingArtifact is returned when a required build product is absent from the build tree.
	ErrMissingArtifact = zerr.New("missing artifact")

	// ErrAmbiguousFirmwareRole is returned when a build tree contains both runtime and satellite firmware.
	ErrAmbiguousFirmwareRole = zerr.New("build tree contains both runtime and satellite manager firmware")

	// ErrArtifactCopyFailed is returned when copying a build product to the output directory fails.
	ErrArtifactCopyFailed = zerr.New("failed to copy artifact")

	// ErrManifestWriteFailed is returned when the product manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write artifact manifest")

	// ErrManifestReadFailed is returned when an artifact set's manifest cannot be read or parsed.
	ErrManifestReadFailed = zerr.New("failed to read artifact manifest")

	// ErrNoRigResource is returned when a hardware session is requested for a target with no rig resource.
	ErrNoRigResource = zerr.New("target has no rig resource")

	// ErrLockUnavailable is returned when the remote rig lock cannot be acquired.
	ErrLockUnavailable = zerr.New("rig lock unavailable")

	// ErrLockReleaseFailed is returned when releasing the remote rig lock fails.
	ErrLockReleaseFailed = zerr.New("failed to release rig lock")

	// ErrFlashFailed is returned when flashing collected artifacts onto the board fails.
	ErrFlashFailed = zerr.New("failed to flash board")

	// ErrTestRunFailed is returned when the hardware test command exits with a non-zero status.
	ErrTestRunFailed = zerr.New("hardware test run failed")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrCleanFailed is returned when removing build state fails.
	ErrCleanFailed = zerr.New("failed to clean build state")
)
