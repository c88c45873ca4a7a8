// Package collect assembles artifact sets from finished build trees.
//
// Which firmware a tree holds is decided structurally, by probing the tree,
// not by per-target flags: master and standalone boards produce the runtime,
// satellite boards produce the satellite manager, and the same collection
// logic serves both topologies.
package collect

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Collector = (*Collector)(nil)

// Collector implements ports.Collector against the local filesystem.
type Collector struct {
	logger ports.Logger
}

// NewCollector creates a new Collector.
func NewCollector(logger ports.Logger) *Collector {
	return &Collector{logger: logger}
}

// Collect probes the build tree for its firmware role, copies the bitstream,
// the optional bootloader, and the role's firmware pair flat into outDir, and
// writes the manifest alongside. Copies are idempotent; re-collecting an
// unchanged tree rewrites the same set.
func (c *Collector) Collect(target domain.BoardTarget, tree domain.BuildTree, outDir string) (domain.ArtifactSet, error) {
	role, err := probeRole(tree, target.Key())
	if err != nil {
		return domain.ArtifactSet{}, err
	}

	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return domain.ArtifactSet{}, zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "path", outDir)
	}

	products := make([]domain.Product, 0, 4)

	bitstream, err := copyProduct(tree.BitstreamPath(), outDir, domain.ProductBitstream)
	if err != nil {
		return domain.ArtifactSet{}, zerr.With(err, "target", target.Key())
	}
	products = append(products, bitstream)

	// The bootloader is part of the set only when the topology produces one.
	if _, err := os.Stat(tree.BootloaderPath()); err == nil {
		bootloader, err := copyProduct(tree.BootloaderPath(), outDir, domain.ProductBootloader)
		if err != nil {
			return domain.ArtifactSet{}, zerr.With(err, "target", target.Key())
		}
		products = append(products, bootloader)
	}

	executable, err := copyProduct(tree.ExecutablePath(role), outDir, domain.ProductFirmware)
	if err != nil {
		return domain.ArtifactSet{}, zerr.With(err, "target", target.Key())
	}
	products = append(products, executable)

	flashImage, err := copyProduct(tree.FlashImagePath(role), outDir, domain.ProductFlashImage)
	if err != nil {
		return domain.ArtifactSet{}, zerr.With(err, "target", target.Key())
	}
	products = append(products, flashImage)

	manifest := domain.Manifest{
		Target:   target.Target,
		Variant:  target.Variant,
		Role:     role,
		Products: products,
	}
	if err := writeManifest(outDir, manifest); err != nil {
		return domain.ArtifactSet{}, zerr.With(err, "target", target.Key())
	}

	c.logger.Info(fmt.Sprintf("collected %d products for %s", len(products), target.Key()))

	return domain.ArtifactSet{
		Target:   target.Target,
		Variant:  target.Variant,
		Dir:      outDir,
		Manifest: manifest,
	}, nil
}

// probeRole decides which firmware the tree produced. A tree holding both
// roles is a broken build, not a selection problem.
func probeRole(tree domain.BuildTree, key string) (domain.FirmwareRole, error) {
	hasRuntime := rolePresent(tree, domain.RoleRuntime)
	hasSatman := rolePresent(tree, domain.RoleSatman)

	switch {
	case hasRuntime && hasSatman:
		return "", zerr.With(domain.ErrAmbiguousFirmwareRole, "target", key)
	case hasRuntime:
		return domain.RoleRuntime, nil
	case hasSatman:
		return domain.RoleSatman, nil
	default:
		err := zerr.With(domain.ErrMissingArtifact, "target", key)
		return "", zerr.With(err, "reason", "tree holds neither runtime nor satellite manager firmware")
	}
}

func rolePresent(tree domain.BuildTree, role domain.FirmwareRole) bool {
	if _, err := os.Stat(tree.ExecutablePath(role)); err == nil {
		return true
	}
	if _, err := os.Stat(tree.FlashImagePath(role)); err == nil {
		return true
	}
	return false
}

// copyProduct copies one build product into destDir and returns its manifest
// entry with the checksum computed during the copy.
func copyProduct(src, destDir, kind string) (domain.Product, error) {
	name := filepath.Base(src)

	in, err := os.Open(src) //nolint:gosec // Path is derived from the managed build tree
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Product{}, zerr.With(domain.ErrMissingArtifact, "artifact", name)
		}
		return domain.Product{}, zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "artifact", name)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	//nolint:gosec // Destination lives under the managed output directory
	out, err := os.OpenFile(filepath.Join(destDir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return domain.Product{}, zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "artifact", name)
	}

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, hasher), in); err != nil {
		_ = out.Close()
		return domain.Product{}, zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "artifact", name)
	}
	if err := out.Close(); err != nil {
		return domain.Product{}, zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "artifact", name)
	}

	return domain.Product{
		Kind:   kind,
		File:   name,
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

func writeManifest(outDir string, manifest domain.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	path := filepath.Join(outDir, domain.ManifestFileName)
	//nolint:gosec // Destination lives under the managed output directory
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	return nil
}
