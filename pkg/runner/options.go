package runner

import (
	"context"
	"log/slog"

	"github.com/aretw0/tendril"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithFPS sets the frame rate. Values below 1 keep the default.
func WithFPS(fps int) Option {
	return func(r *Runner) {
		if fps > 0 {
			r.fps = fps
		}
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMaxFrames stops the loop after n frames. Zero means no limit.
func WithMaxFrames(n uint64) Option {
	return func(r *Runner) {
		r.maxFrames = n
	}
}

// WithTickErrorHandler is called with every failed tick. The loop keeps going.
func WithTickErrorHandler(fn func(context.Context, error)) Option {
	return func(r *Runner) {
		r.onTickError = fn
	}
}

// WithFrameHandler is called after every frame, outside the frame's
// transform scope. Renderers use it to present the surface.
func WithFrameHandler(fn func(context.Context, *tendril.Engine)) Option {
	return func(r *Runner) {
		r.onFrame = fn
	}
}
