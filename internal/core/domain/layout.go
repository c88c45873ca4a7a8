package domain

import "path/filepath"

const (
	// FabDirName is the name of the internal workspace directory.
	FabDirName = ".fab"

	// BuildDirName is the name of the directory holding per-target build trees.
	BuildDirName = "build"

	// VendorDirName is the name of the firmware dependency cache directory.
	VendorDirName = "vendor"

	// DistDirName is the default output directory for collected artifact sets.
	DistDirName = "dist"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "fab.yaml"

	// LockFileName is the name of the firmware dependency lock file.
	LockFileName = "fab.lock.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Build tree topology. The synthesis toolchain lays its outputs out the same
// way for every board; which firmware role is present varies by topology.
const (
	// GatewareDirName holds the synthesized logic outputs.
	GatewareDirName = "gateware"

	// SoftwareDirName holds the firmware outputs.
	SoftwareDirName = "software"

	// BitstreamFileName is the compiled programmable-logic configuration.
	BitstreamFileName = "top.bit"

	// SynthesisLogName is the captured synthesis tool report.
	SynthesisLogName = "synthesis.log"

	// BootloaderDirName holds the optional bootloader output.
	BootloaderDirName = "bootloader"

	// BootloaderFileName is the bootloader binary.
	BootloaderFileName = "bootloader.bin"

	// RuntimeDirName holds the primary runtime firmware outputs.
	RuntimeDirName = "runtime"

	// SatmanDirName holds the satellite manager firmware outputs.
	SatmanDirName = "satman"

	// ManifestFileName is the product manifest written next to a collected
	// artifact set.
	ManifestFileName = "manifest.json"
)

// DefaultFabPath returns the default root directory for fab metadata.
func DefaultFabPath() string {
	return FabDirName
}

// DefaultBuildPath returns the default directory for build trees.
// It joins .fab and build.
func DefaultBuildPath() string {
	return filepath.Join(FabDirName, BuildDirName)
}

// DefaultVendorPath returns the default directory for the dependency cache.
// It joins .fab and vendor.
func DefaultVendorPath() string {
	return filepath.Join(FabDirName, VendorDirName)
}

// DefaultDistPath returns the default output directory for artifact sets.
func DefaultDistPath() string {
	return DistDirName
}
