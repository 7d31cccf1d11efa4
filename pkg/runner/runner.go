package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tendril"
)

// ErrStopped is returned by Submit when the loop is not running anymore.
var ErrStopped = errors.New("runner stopped")

// Command is a unit of work executed on the loop goroutine.
type Command func(*tendril.Engine) error

type request struct {
	cmd  Command
	done chan error
}

// Runner handles the frame loop of a Tendril engine.
type Runner struct {
	fps         int
	maxFrames   uint64
	logger      *slog.Logger
	onTickError func(context.Context, error)
	onFrame     func(context.Context, *tendril.Engine)

	requests chan request
	stopped  chan struct{}
}

// New creates a Runner. Call Run to start the loop.
func New(opts ...Option) *Runner {
	r := &Runner{
		fps:      DefaultFPS,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		requests: make(chan request),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FPS returns the configured frame rate.
func (r *Runner) FPS() int {
	return r.fps
}

// Run steps eng once per frame until ctx is cancelled or the frame limit is
// reached. Submitted commands run between frames. A Runner can be run once.
func (r *Runner) Run(ctx context.Context, eng *tendril.Engine) error {
	defer close(r.stopped)

	ticker := time.NewTicker(time.Second / time.Duration(r.fps))
	defer ticker.Stop()

	r.logger.InfoContext(ctx, "frame loop started", "fps", r.fps)
	var frames uint64
	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "frame loop stopped", "frames", frames)
			return nil
		case req := <-r.requests:
			req.done <- req.cmd(eng)
		case <-ticker.C:
			r.Frame(ctx, eng)
			frames++
			if r.maxFrames > 0 && frames >= r.maxFrames {
				r.logger.InfoContext(ctx, "frame limit reached", "frames", frames)
				return nil
			}
		}
	}
}

// Frame runs a single frame inside its own transform scope.
func (r *Runner) Frame(ctx context.Context, eng *tendril.Engine) {
	surface := eng.Surface()
	surface.Push()
	err := eng.Tick(ctx)
	surface.Pop()

	if err != nil && r.onTickError != nil {
		r.onTickError(ctx, err)
	}
	if r.onFrame != nil {
		r.onFrame(ctx, eng)
	}
}

// Submit runs cmd on the loop goroutine and waits for its result.
func (r *Runner) Submit(ctx context.Context, cmd Command) error {
	done := make(chan error, 1)
	select {
	case r.requests <- request{cmd: cmd, done: done}:
	case <-r.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
