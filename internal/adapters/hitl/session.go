// Package hitl coordinates exclusive hardware-in-the-loop sessions.
//
// One physical test rig sits behind a designated ssh host. Flashing and
// exercising a board is destructive to any concurrent session, so every
// hardware session runs inside an advisory lock held on the remote side.
// The remote acknowledgement is the sole source of truth for "lock held";
// no local state is trusted.
package hitl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Rig = (*Rig)(nil)

// lockDirPath is where the rig host keeps its advisory lock files.
const lockDirPath = "/tmp/board_lock"

// ackOK is the single readiness acknowledgement the remote side emits once
// the lock is held. Nothing before it means the lock is not ours.
const ackOK = "Ok"

// releaseGrace bounds how long Release waits for the remote side to wind
// down after the release signal before killing the channel.
const releaseGrace = 5 * time.Second

// CommandBuilder constructs the control channel process for a rig resource.
// Injectable so tests can stand in a local process for ssh.
type CommandBuilder func(host, resource string) *exec.Cmd

// Rig implements ports.Rig over ssh control channels.
type Rig struct {
	logger ports.Logger
	build  CommandBuilder
}

// NewRig creates a Rig that opens control channels with ssh.
func NewRig(logger ports.Logger) *Rig {
	return NewRigWithCommand(logger, defaultCommandBuilder)
}

// NewRigWithCommand creates a Rig with a custom control channel builder.
func NewRigWithCommand(logger ports.Logger, build CommandBuilder) *Rig {
	return &Rig{logger: logger, build: build}
}

// Session creates a lock session for one rig resource.
func (r *Rig) Session(host, resource string) ports.RigLock {
	return &Session{
		logger:   r.logger,
		build:    r.build,
		id:       uuid.NewString(),
		host:     host,
		resource: resource,
		ack:      make(chan ackResult, 1),
		done:     make(chan struct{}),
	}
}

func defaultCommandBuilder(host, resource string) *exec.Cmd {
	//nolint:gosec // Host and resource come from the validated project config
	return exec.Command("ssh",
		"-o", "BatchMode=yes",
		"-o", "ServerAliveInterval=30",
		host,
		remoteLockCommand(resource),
	)
}

// remoteLockCommand is what the rig host runs: take the advisory lock, emit
// the acknowledgement line, then hold the lock until our write side closes.
func remoteLockCommand(resource string) string {
	lockFile := path.Join(lockDirPath, resource)
	return fmt.Sprintf("mkdir -p %s && exec flock %s -c 'echo Ok; exec cat'", lockDirPath, lockFile)
}

type ackResult struct {
	line string
	err  error
}

// Session is one exclusive lock session. Acquire and Release are called from
// the same goroutine; Release alone is safe more than once and safe after a
// failed Acquire.
type Session struct {
	logger   ports.Logger
	build    CommandBuilder
	id       string
	host     string
	resource string

	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stderrBuf bytes.Buffer

	ack  chan ackResult
	done chan struct{}

	acquired bool
	killed   bool
	waitErr  error

	releaseOnce sync.Once
	releaseErr  error
}

// Acquire opens the control channel and blocks until the remote side emits
// the acknowledgement. Losing the channel first means the lock was never
// held and the payload must not run.
func (s *Session) Acquire(ctx context.Context) error {
	if s.resource == "" {
		return zerr.With(domain.ErrNoRigResource, "host", s.host)
	}

	s.cmd = s.build(s.host, s.resource)
	s.cmd.Stderr = &s.stderrBuf

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return s.sessionInfo(zerr.Wrap(err, domain.ErrLockUnavailable.Error()))
	}
	s.stdin = stdin

	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return s.sessionInfo(zerr.Wrap(err, domain.ErrLockUnavailable.Error()))
	}

	if err := s.cmd.Start(); err != nil {
		return s.sessionInfo(zerr.Wrap(err, domain.ErrLockUnavailable.Error()))
	}

	go s.watch(stdout)

	s.logger.Info(fmt.Sprintf("requesting rig lock %s via %s (session %s)", s.resource, s.host, s.id))

	select {
	case result := <-s.ack:
		if result.err != nil {
			s.terminate()
			err := zerr.Wrap(result.err, domain.ErrLockUnavailable.Error())
			err = zerr.With(err, "reason", "control channel lost before acknowledgement")
			if msg := s.remoteStderr(); msg != "" {
				err = zerr.With(err, "stderr", msg)
			}
			return s.sessionInfo(err)
		}
		if result.line != ackOK {
			s.terminate()
			return s.sessionInfo(zerr.With(domain.ErrLockUnavailable, "ack", result.line))
		}
	case <-ctx.Done():
		s.terminate()
		return s.sessionInfo(zerr.Wrap(ctx.Err(), domain.ErrLockUnavailable.Error()))
	}

	s.acquired = true
	s.logger.Info(fmt.Sprintf("rig lock %s acquired (session %s)", s.resource, s.id))
	return nil
}

// Release signals the remote side to drop the lock and closes the control
// channel. Only the first call acts; later calls return the first result.
func (s *Session) Release() error {
	s.releaseOnce.Do(func() {
		s.releaseErr = s.release()
	})
	return s.releaseErr
}

func (s *Session) release() error {
	if s.cmd == nil || s.cmd.Process == nil {
		// Acquire never opened the channel, so nothing is held.
		return nil
	}

	// Closing the write side is the release signal: the remote cat sees EOF,
	// flock exits, the kernel drops the lock.
	_ = s.stdin.Close()

	select {
	case <-s.done:
	case <-time.After(releaseGrace):
		s.killed = true
		_ = s.cmd.Process.Kill()
		<-s.done
	}

	if !s.acquired {
		return nil
	}

	s.logger.Info(fmt.Sprintf("rig lock %s released (session %s)", s.resource, s.id))

	if s.killed {
		err := zerr.With(domain.ErrLockReleaseFailed, "session", s.id)
		return zerr.With(err, "reason", "control channel did not close within grace period")
	}
	if s.waitErr != nil {
		err := zerr.Wrap(s.waitErr, domain.ErrLockReleaseFailed.Error())
		return zerr.With(err, "session", s.id)
	}
	return nil
}

// watch owns the read side of the channel: it delivers the acknowledgement,
// drains whatever follows, and reaps the process once the channel ends.
func (s *Session) watch(stdout io.Reader) {
	reader := bufio.NewReader(stdout)
	line, err := reader.ReadString('\n')
	if err != nil {
		s.ack <- ackResult{err: err}
	} else {
		s.ack <- ackResult{line: strings.TrimRight(line, "\r\n")}
		_, _ = io.Copy(io.Discard, reader)
	}

	s.waitErr = s.cmd.Wait()
	close(s.done)
}

// terminate tears down the channel after a failed acquisition.
func (s *Session) terminate() {
	_ = s.cmd.Process.Kill()
	_ = s.stdin.Close()
	<-s.done
}

func (s *Session) remoteStderr() string {
	return strings.TrimSpace(s.stderrBuf.String())
}

func (s *Session) sessionInfo(err error) error {
	err = zerr.With(err, "resource", s.resource)
	return zerr.With(err, "session", s.id)
}
