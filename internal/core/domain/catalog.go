package domain

import (
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// Catalog holds the declared board targets, feature patches, and rig
// configuration of a project. It is the input to target resolution.
type Catalog struct {
	// BuildDir is the root directory for per-target build trees.
	BuildDir string

	// VendorDir is the root directory for the firmware dependency cache.
	VendorDir string

	// DistDir is the output directory for collected artifact sets.
	DistDir string

	// SynthCommand is the synthesis command template. Arguments may
	// reference {target}, {variant}, and {build_dir} placeholders.
	SynthCommand []string

	// Targets maps board names to their declared configuration.
	Targets map[string]TargetConfig

	// Features maps feature names to patch file paths.
	Features map[string]string

	// Rig describes the shared hardware test rig.
	Rig RigSpec
}

// TargetConfig is the declared configuration of one board target.
type TargetConfig struct {
	// Variants lists the gateware variants, in declaration order.
	Variants []string

	// RigResource names the shared hardware resource for this board.
	RigResource string
}

// RigSpec describes the remote test rig shared by hardware sessions.
type RigSpec struct {
	// Host is the rig coordinator host reachable over ssh.
	Host string

	// SettleSeconds is how long to wait after flashing before tests run.
	SettleSeconds int

	// FlashCommand is the flash invocation template. Arguments may
	// reference {target}, {variant}, {host}, and {artifacts} placeholders.
	FlashCommand []string

	// TestCommand is the hardware test invocation template. It accepts
	// the same placeholders as FlashCommand.
	TestCommand []string
}

// DefaultSettleSeconds is how long the payload waits after flashing when the
// config does not declare a settle delay.
const DefaultSettleSeconds = 15

// FlashInvocation returns the flash command for a target with all
// placeholders expanded. Empty when the rig declares no flash command.
func (r RigSpec) FlashInvocation(target BoardTarget, artifactsDir string) []string {
	return expandRigCommand(r.FlashCommand, target, r.Host, artifactsDir)
}

// TestInvocation returns the hardware test command for a target with all
// placeholders expanded. Empty when the rig declares no test command.
func (r RigSpec) TestInvocation(target BoardTarget, artifactsDir string) []string {
	return expandRigCommand(r.TestCommand, target, r.Host, artifactsDir)
}

// SettleDelay returns the post-flash settle delay.
func (r RigSpec) SettleDelay() time.Duration {
	seconds := r.SettleSeconds
	if seconds <= 0 {
		seconds = DefaultSettleSeconds
	}
	return time.Duration(seconds) * time.Second
}

func expandRigCommand(template []string, target BoardTarget, host, artifactsDir string) []string {
	if len(template) == 0 {
		return nil
	}
	replacer := strings.NewReplacer(
		"{target}", target.Target,
		"{variant}", target.Variant,
		"{host}", host,
		"{artifacts}", artifactsDir,
	)
	expanded := make([]string, len(template))
	for i, arg := range template {
		expanded[i] = replacer.Replace(arg)
	}
	return expanded
}

// DefaultSynthCommand is the canonical synthesis command template used when
// the config does not declare one.
var DefaultSynthCommand = []string{"python", "-m", "gateware.targets.{target}", "-V", "{variant}"}

// ResolveOverrides carries per-invocation adjustments to target resolution.
// Overrides only make sense for a single target, since a patched tree or a
// custom command is specific to one board.
type ResolveOverrides struct {
	// Features are the requested feature names, in order.
	Features []string

	// SynthCommand replaces the catalog's command template when non-empty.
	SynthCommand []string
}

func (o ResolveOverrides) empty() bool {
	return len(o.Features) == 0 && len(o.SynthCommand) == 0
}

// Resolve expands a list of target specs into fully resolved board targets.
// Specs take the form "target" or "target@variant"; a bare target resolves
// only when the board declares exactly one variant. Duplicate specs collapse
// to a single build, preserving first-occurrence order.
func (c *Catalog) Resolve(specs []string, overrides ResolveOverrides) ([]BoardTarget, error) {
	if len(specs) == 0 {
		return nil, ErrNoTargetsSpecified
	}

	patches, err := c.resolveFeatures(overrides.Features)
	if err != nil {
		return nil, err
	}

	template := c.SynthCommand
	if len(overrides.SynthCommand) > 0 {
		template = overrides.SynthCommand
	}
	if len(template) == 0 {
		template = DefaultSynthCommand
	}

	seen := make(map[string]struct{}, len(specs))
	targets := make([]BoardTarget, 0, len(specs))
	for _, spec := range specs {
		target, err := c.resolveSpec(spec, template, patches)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[target.Key()]; ok {
			continue
		}
		seen[target.Key()] = struct{}{}
		targets = append(targets, target)
	}

	if !overrides.empty() && len(targets) > 1 {
		return nil, zerr.With(ErrOverrideNeedsSingleTarget, "targets", len(targets))
	}

	return targets, nil
}

func (c *Catalog) resolveSpec(spec string, template []string, patches []FeaturePatch) (BoardTarget, error) {
	name, variant, err := ParseTargetSpec(spec)
	if err != nil {
		return BoardTarget{}, err
	}

	cfg, ok := c.Targets[name]
	if !ok {
		return BoardTarget{}, zerr.With(ErrUnknownTarget, "target", name)
	}

	if variant == "" {
		if len(cfg.Variants) != 1 {
			err := zerr.With(ErrAmbiguousVariant, "target", name)
			return BoardTarget{}, zerr.With(err, "variants", strings.Join(cfg.Variants, ", "))
		}
		variant = cfg.Variants[0]
	} else if !slices.Contains(cfg.Variants, variant) {
		err := zerr.With(ErrUnknownVariant, "target", name)
		return BoardTarget{}, zerr.With(err, "variant", variant)
	}

	tree := NewBuildTree(c.BuildDir, name, variant)
	return BoardTarget{
		Target:       name,
		Variant:      variant,
		SynthCommand: expandCommand(template, name, variant, tree.Root),
		Patches:      patches,
		RigResource:  cfg.RigResource,
	}, nil
}

func (c *Catalog) resolveFeatures(features []string) ([]FeaturePatch, error) {
	if len(features) == 0 {
		return nil, nil
	}

	patches := make([]FeaturePatch, 0, len(features))
	for _, feature := range features {
		path, ok := c.Features[feature]
		if !ok {
			return nil, zerr.With(ErrUnknownFeature, "feature", feature)
		}
		patches = append(patches, FeaturePatch{Feature: feature, Path: path})
	}
	return patches, nil
}

func expandCommand(template []string, target, variant, buildDir string) []string {
	replacer := strings.NewReplacer(
		"{target}", target,
		"{variant}", variant,
		"{build_dir}", buildDir,
	)
	expanded := make([]string, len(template))
	for i, arg := range template {
		expanded[i] = replacer.Replace(arg)
	}
	return expanded
}
