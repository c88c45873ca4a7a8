package ports

import (
	"context"

	"go.trai.ch/fab/internal/core/domain"
)

// Vendorer materializes locked firmware dependencies into the local cache.
//
// Implementations are responsible for:
//   - Fetching each locked archive from its pinned source
//   - Verifying archive contents against the locked checksum
//   - Unpacking verified archives so the toolchain can consume them offline
//
//go:generate mockgen -source=vendorer.go -destination=mocks/mock_vendorer.go -package=mocks
type Vendorer interface {
	// Vendor ensures every entry of the lock is present and verified in the
	// cache rooted at cacheDir. It is idempotent: an unchanged lock with an
	// intact cache is a no-op. A checksum mismatch fails the whole run before
	// any build step.
	Vendor(ctx context.Context, cacheDir string, lock *domain.DependencyLock) error

	// Env returns environment variables in "KEY=VALUE" format pointing the
	// synthesis toolchain at the cache rooted at cacheDir for offline
	// dependency resolution.
	Env(cacheDir string) []string
}
