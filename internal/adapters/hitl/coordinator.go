package hitl

import (
	"context"
	"errors"

	"go.trai.ch/fab/internal/core/ports"
)

// Coordinator scopes payload execution to a held rig lock.
type Coordinator struct{}

// NewCoordinator creates a new Coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// WithLock acquires the lock, runs the payload, and releases on every exit
// path. A payload failure never suppresses the release, and a release
// failure is joined with the payload's rather than replacing it. When the
// lock cannot be acquired the payload does not run at all.
func (c *Coordinator) WithLock(ctx context.Context, lock ports.RigLock, payload func(context.Context) error) (err error) {
	if acquireErr := lock.Acquire(ctx); acquireErr != nil {
		return acquireErr
	}

	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	return payload(ctx)
}
