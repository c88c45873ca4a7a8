package domain

import "path/filepath"

// BuildTree locates the outputs of one synthesis run. The synthesis tool
// lays out gateware and firmware in a fixed topology under the tree root;
// all path knowledge about that topology lives here.
type BuildTree struct {
	// Root is the per-target build directory (e.g., .fab/build/kc705/nist_clock).
	Root string
}

// NewBuildTree returns the build tree for a target and variant under buildDir.
func NewBuildTree(buildDir, target, variant string) BuildTree {
	return BuildTree{Root: filepath.Join(buildDir, target, variant)}
}

// GatewareDir returns the directory holding synthesized logic outputs.
func (t BuildTree) GatewareDir() string {
	return filepath.Join(t.Root, GatewareDirName)
}

// SoftwareDir returns the directory holding firmware outputs.
func (t BuildTree) SoftwareDir() string {
	return filepath.Join(t.Root, SoftwareDirName)
}

// BitstreamPath returns the path of the compiled bitstream.
func (t BuildTree) BitstreamPath() string {
	return filepath.Join(t.GatewareDir(), BitstreamFileName)
}

// SynthesisLogPath returns the path of the captured synthesis report.
func (t BuildTree) SynthesisLogPath() string {
	return filepath.Join(t.GatewareDir(), SynthesisLogName)
}

// BootloaderPath returns the path of the bootloader binary.
func (t BuildTree) BootloaderPath() string {
	return filepath.Join(t.SoftwareDir(), BootloaderDirName, BootloaderFileName)
}

// FirmwareDir returns the directory holding outputs for a firmware role.
func (t BuildTree) FirmwareDir(role FirmwareRole) string {
	return filepath.Join(t.SoftwareDir(), role.Dir())
}

// ExecutablePath returns the path of a firmware role's executable image.
func (t BuildTree) ExecutablePath(role FirmwareRole) string {
	return filepath.Join(t.FirmwareDir(role), role.Executable())
}

// FlashImagePath returns the path of a firmware role's flashable image.
func (t BuildTree) FlashImagePath(role FirmwareRole) string {
	return filepath.Join(t.FirmwareDir(role), role.FlashImage())
}
