package hitl_test

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fab/internal/adapters/hitl"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/fab/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeRig swaps ssh for a local shell script so the line protocol can be
// exercised without a remote host.
func fakeRig(t *testing.T, script string) *hitl.Rig {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return hitl.NewRigWithCommand(log, func(host, resource string) *exec.Cmd {
		return exec.Command("sh", "-c", script)
	})
}

type metadataCarrier interface {
	Metadata() map[string]any
}

func sessionMetadata(t *testing.T, err error) map[string]any {
	t.Helper()
	merged := map[string]any{}
	for err != nil {
		var carrier metadataCarrier
		if !errors.As(err, &carrier) {
			break
		}
		for key, value := range carrier.Metadata() {
			if _, ok := merged[key]; !ok {
				merged[key] = value
			}
		}
		err = errors.Unwrap(err)
	}
	return merged
}

func TestSession_AcquireAndRelease(t *testing.T) {
	rig := fakeRig(t, "echo Ok; exec cat")
	lock := rig.Session("rig-host", "kc705_1")

	require.NoError(t, lock.Acquire(t.Context()))
	require.NoError(t, lock.Release())
}

func TestSession_ReleaseSignalsChannelEOF(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "released")
	rig := fakeRig(t, fmt.Sprintf("echo Ok; cat >/dev/null; touch %q", marker))
	lock := rig.Session("rig-host", "kc705_1")

	require.NoError(t, lock.Acquire(t.Context()))
	assert.NoFileExists(t, marker, "lock holder exited before release")

	require.NoError(t, lock.Release())
	assert.FileExists(t, marker, "closing the write side should end the remote holder")
}

func TestSession_ReleaseIsIdempotent(t *testing.T) {
	rig := fakeRig(t, "echo Ok; exec cat")
	lock := rig.Session("rig-host", "kc705_1")

	require.NoError(t, lock.Acquire(t.Context()))
	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())
}

func TestSession_ChannelLossBeforeAck(t *testing.T) {
	rig := fakeRig(t, "exit 1")
	lock := rig.Session("rig-host", "kc705_1")

	err := lock.Acquire(t.Context())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrLockUnavailable.Error())

	// A failed acquisition still releases cleanly.
	require.NoError(t, lock.Release())
}

func TestSession_StderrSurfacesInAcquireFailure(t *testing.T) {
	rig := fakeRig(t, "echo 'Permission denied (publickey)' >&2; exit 255")
	lock := rig.Session("rig-host", "kc705_1")

	err := lock.Acquire(t.Context())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrLockUnavailable.Error())

	metadata := sessionMetadata(t, err)
	assert.Contains(t, metadata["stderr"], "Permission denied")
	assert.Equal(t, "kc705_1", metadata["resource"])
}

func TestSession_UnexpectedAckLine(t *testing.T) {
	rig := fakeRig(t, "echo Busy; exec cat")
	lock := rig.Session("rig-host", "kc705_1")

	err := lock.Acquire(t.Context())
	require.ErrorIs(t, err, domain.ErrLockUnavailable)
	assert.Equal(t, "Busy", sessionMetadata(t, err)["ack"])

	require.NoError(t, lock.Release())
}

func TestSession_AcquireHonorsContext(t *testing.T) {
	// Holds the channel open without ever acknowledging.
	rig := fakeRig(t, "exec cat")
	lock := rig.Session("rig-host", "kc705_1")

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()

	err := lock.Acquire(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, context.DeadlineExceeded.Error())
	assert.ErrorContains(t, err, domain.ErrLockUnavailable.Error())

	require.NoError(t, lock.Release())
}

func TestSession_EmptyResource(t *testing.T) {
	rig := fakeRig(t, "echo Ok; exec cat")
	lock := rig.Session("rig-host", "")

	err := lock.Acquire(t.Context())
	require.ErrorIs(t, err, domain.ErrNoRigResource)
	require.NoError(t, lock.Release())
}

func TestSession_MutualExclusion(t *testing.T) {
	if _, err := exec.LookPath("flock"); err != nil {
		t.Skip("flock not installed")
	}

	lockDir := t.TempDir()
	script := fmt.Sprintf("exec flock %q -c 'echo Ok; exec cat'", filepath.Join(lockDir, "kc705_1"))
	rig := fakeRig(t, script)

	first := rig.Session("rig-host", "kc705_1")
	require.NoError(t, first.Acquire(t.Context()))

	second := rig.Session("rig-host", "kc705_1")
	secondErr := make(chan error, 1)
	go func() {
		secondErr <- second.Acquire(t.Context())
	}()

	select {
	case err := <-secondErr:
		t.Fatalf("second session acquired while first held the lock: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, first.Release())
	require.NoError(t, <-secondErr)
	require.NoError(t, second.Release())
}

func TestSession_ImplementsRigLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	rig := hitl.NewRig(log)

	var lock ports.RigLock = rig.Session("rig-host", "kc705_1")
	assert.NotNil(t, lock)
}
