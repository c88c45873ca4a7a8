package hitl

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Payload is the validation sequence run while the rig lock is held: flash
// the collected artifact set, wait for the board to settle, then drive the
// hardware test program against the booted board.
type Payload struct {
	logger   ports.Logger
	executor ports.Executor
}

// NewPayload creates a new Payload.
func NewPayload(logger ports.Logger, executor ports.Executor) *Payload {
	return &Payload{logger: logger, executor: executor}
}

// Run flashes, settles, and tests. Flashing is mandatory; a missing test
// command ends the session after the settle window instead of failing it.
func (p *Payload) Run(ctx context.Context, rig domain.RigSpec, target domain.BoardTarget, set domain.ArtifactSet, sink io.Writer) error {
	if sink == nil {
		sink = io.Discard
	}

	flash := rig.FlashInvocation(target, set.Dir)
	if len(flash) == 0 {
		err := zerr.With(domain.ErrFlashFailed, "target", target.Key())
		return zerr.With(err, "reason", "no flash command configured")
	}

	p.logger.Info("flashing " + target.Key())
	if err := p.executor.Execute(ctx, flash, "", nil, sink, sink); err != nil {
		err = zerr.Wrap(err, domain.ErrFlashFailed.Error())
		return zerr.With(err, "target", target.Key())
	}

	settle := rig.SettleDelay()
	p.logger.Info(fmt.Sprintf("waiting %s for %s to boot", settle, target.Key()))
	timer := time.NewTimer(settle)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}

	test := rig.TestInvocation(target, set.Dir)
	if len(test) == 0 {
		p.logger.Warn("no hardware test command configured, ending session after flash")
		return nil
	}

	env := []string{
		"FAB_BOARD_ROOT=" + set.Dir,
		"FAB_LOW_LATENCY=1",
	}

	p.logger.Info("running hardware tests for " + target.Key())
	if err := p.executor.Execute(ctx, test, "", env, sink, sink); err != nil {
		err = zerr.Wrap(err, domain.ErrTestRunFailed.Error())
		return zerr.With(err, "target", target.Key())
	}

	return nil
}
