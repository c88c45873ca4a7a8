package ports

import "context"

// Rig opens lock sessions against the shared hardware test rig.
//
//go:generate mockgen -source=riglock.go -destination=mocks/mock_riglock.go -package=mocks
type Rig interface {
	// Session creates a new lock session for the named rig resource,
	// reachable through host. The session holds nothing until Acquire
	// succeeds.
	Session(host, resource string) RigLock
}

// RigLock is one exclusive lock session on a rig resource.
//
// The protocol is a single acknowledgement: Acquire blocks until the remote
// side confirms exclusive ownership, then the caller runs its critical
// section and must Release on every exit path.
type RigLock interface {
	// Acquire blocks until the lock is held or the channel is lost.
	// A channel loss before the acknowledgement returns ErrLockUnavailable.
	Acquire(ctx context.Context) error

	// Release relinquishes the lock. It is safe to call more than once and
	// safe to call after a failed Acquire; only the first call acts.
	Release() error
}
