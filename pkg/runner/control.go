package runner

import (
	"context"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/pkg/domain"
)

// Control gives other goroutines serialized access to an engine driven by a
// Runner. Every call except LastError waits for the loop.
type Control struct {
	runner *Runner
	engine *tendril.Engine
}

// NewControl binds r and the engine it runs.
func NewControl(r *Runner, eng *tendril.Engine) *Control {
	return &Control{runner: r, engine: eng}
}

// RebuildScript parses and rebuilds between two frames.
func (c *Control) RebuildScript(ctx context.Context, data []byte) error {
	return c.runner.Submit(ctx, func(e *tendril.Engine) error {
		return e.RebuildScript(ctx, data)
	})
}

// Inspect takes a snapshot between two frames.
func (c *Control) Inspect(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := c.runner.Submit(ctx, func(e *tendril.Engine) error {
		snap = e.Inspect()
		return nil
	})
	return snap, err
}

// Statements returns the statements of the running graph, or domain.ErrNoGraph
// before the first successful build.
func (c *Control) Statements(ctx context.Context) ([]domain.Statement, error) {
	var stmts []domain.Statement
	err := c.runner.Submit(ctx, func(e *tendril.Engine) error {
		if e.Registry() == nil {
			return domain.ErrNoGraph
		}
		stmts = e.Statements()
		return nil
	})
	return stmts, err
}

// LastError returns the last rebuild error without waiting for the loop.
func (c *Control) LastError() error {
	return c.engine.Err()
}
