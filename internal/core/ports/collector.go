package ports

import "go.trai.ch/fab/internal/core/domain"

// Collector probes a finished build tree and assembles the artifact set.
//
//go:generate mockgen -source=collector.go -destination=mocks/mock_collector.go -package=mocks
type Collector interface {
	// Collect verifies the tree holds a complete product set, copies the
	// products into outDir, and writes the manifest alongside. The tree must
	// contain exactly one of the runtime or satellite manager firmware;
	// anything else returns ErrMissingArtifact or ErrAmbiguousFirmwareRole.
	Collect(target domain.BoardTarget, tree domain.BuildTree, outDir string) (domain.ArtifactSet, error)
}
