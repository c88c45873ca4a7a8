package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// BoardTarget is a fully resolved build specification for one board.
// It carries everything a build needs: the synthesis command with all
// placeholders expanded, the feature patches to apply, and the rig
// resource guarding hardware access.
type BoardTarget struct {
	// Target is the board name (e.g., "kc705").
	Target string

	// Variant is the gateware variant (e.g., "nist_clock").
	Variant string

	// SynthCommand is the synthesis invocation with placeholders expanded.
	SynthCommand []string

	// Patches are the feature patches to apply before synthesis, in the
	// order the features were requested.
	Patches []FeaturePatch

	// RigResource names the shared hardware resource for this board.
	// Empty when the board has no rig attached.
	RigResource string
}

// Key returns the canonical target@variant identifier.
func (t BoardTarget) Key() string {
	return t.Target + "@" + t.Variant
}

// FeaturePatch maps a requested feature to its patch file.
type FeaturePatch struct {
	// Feature is the feature name as requested on the command line.
	Feature string

	// Path is the patch file path relative to the project root.
	Path string
}

// ParseTargetSpec splits a target spec of the form "target" or
// "target@variant". An empty variant means the spec named the target only.
// Returns ErrInvalidTargetSpec when the spec is empty, has a dangling
// separator, or contains more than one separator.
func ParseTargetSpec(spec string) (target, variant string, err error) {
	if spec == "" {
		return "", "", zerr.With(ErrInvalidTargetSpec, "spec", spec)
	}

	parts := strings.Split(spec, "@")
	switch len(parts) {
	case 1:
		return parts[0], "", nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", zerr.With(ErrInvalidTargetSpec, "spec", spec)
		}
		return parts[0], parts[1], nil
	default:
		return "", "", zerr.With(ErrInvalidTargetSpec, "spec", spec)
	}
}
