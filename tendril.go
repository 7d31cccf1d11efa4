package tendril

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/tendril/internal/compiler"
	"github.com/aretw0/tendril/internal/runtime"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/generator"
	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/registry"
)

// Engine is the high-level entry point for the Tendril library.
// It wraps the internal runtime and provides a simplified API for hosts.
//
// An Engine is not safe for concurrent use: Rebuild and Tick must be called
// from one goroutine (see pkg/runner for a loop that does this).
type Engine struct {
	runtime  *runtime.Engine
	parser   *compiler.Parser
	env      generator.Env
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	maxDepth int
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSurface sets the drawing target.
func WithSurface(s host.Surface) Option {
	return func(e *Engine) {
		e.env.Surface = s
	}
}

// WithClock sets the time source read by Trig and Beats.
func WithClock(c host.Clock) Option {
	return func(e *Engine) {
		e.env.Clock = c
	}
}

// WithKeyboard sets the key state provider read by Gate.
func WithKeyboard(k host.Keyboard) Option {
	return func(e *Engine) {
		e.env.Keyboard = k
	}
}

// WithDiagnostics sets the sink for Log output.
func WithDiagnostics(d host.Diagnostics) Option {
	return func(e *Engine) {
		e.env.Diagnostics = d
	}
}

// WithMaxDepth bounds how often one update may lap a wiring cycle (default 64).
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		e.maxDepth = n
	}
}

// WithName labels the engine, typically with the script file name.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New initializes an Engine with no graph loaded.
// Collaborators that are not provided fall back to no-op implementations.
func New(opts ...Option) *Engine {
	eng := &Engine{parser: compiler.NewParser()}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("script", eng.Name)
	}
	if eng.env.Surface == nil {
		eng.env.Surface = host.NopSurface{}
	}
	if eng.env.Clock == nil {
		eng.env.Clock = host.NewSystemClock()
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithEnv(eng.env),
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	}
	if eng.maxDepth > 0 {
		runtimeOpts = append(runtimeOpts, runtime.WithMaxDepth(eng.maxDepth))
	}
	eng.runtime = runtime.NewEngine(runtimeOpts...)
	return eng
}

// Rebuild replaces the running graph with one built from stmts.
// If any statement fails, the running graph is left untouched, the error is
// returned (as *domain.BuildError) and remembered by Err until the next
// successful rebuild.
func (e *Engine) Rebuild(ctx context.Context, stmts []domain.Statement) error {
	return e.runtime.Rebuild(ctx, stmts)
}

// RebuildScript parses a YAML or JSON script and rebuilds from it.
// Parse failures are treated like build failures.
func (e *Engine) RebuildScript(ctx context.Context, data []byte) error {
	stmts, err := e.parser.Parse(data)
	if err != nil {
		e.runtime.Reject(ctx, err)
		return err
	}
	return e.runtime.Rebuild(ctx, stmts)
}

// Tick steps every generator of the running graph once, in declaration order.
func (e *Engine) Tick(ctx context.Context) error {
	return e.runtime.Tick(ctx)
}

// Err returns the last rebuild error, or nil if the last rebuild succeeded.
func (e *Engine) Err() error {
	return e.runtime.Err()
}

// Inspect describes the running graph for visualization or introspection tools.
func (e *Engine) Inspect() domain.Snapshot {
	return e.runtime.Inspect()
}

// Registry returns the running generators, or nil before the first successful build.
func (e *Engine) Registry() *registry.Registry {
	if g := e.runtime.Graph(); g != nil {
		return g.Registry
	}
	return nil
}

// Statements returns the statements the running graph was built from.
func (e *Engine) Statements() []domain.Statement {
	if g := e.runtime.Graph(); g != nil {
		return g.Statements
	}
	return nil
}

// Cycles reports the feedback loops of the running graph as lists of port IDs.
func (e *Engine) Cycles() [][]string {
	reg := e.Registry()
	if reg == nil {
		return nil
	}
	return runtime.Cycles(reg)
}

// Frame returns the number of the last stepped frame.
func (e *Engine) Frame() uint64 {
	return e.runtime.Frame()
}

// Surface returns the drawing target generators render to.
func (e *Engine) Surface() host.Surface {
	return e.env.Surface
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
