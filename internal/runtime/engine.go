package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/generator"
	"github.com/aretw0/tendril/pkg/port"
	"github.com/aretw0/tendril/pkg/registry"
	"github.com/google/uuid"
)

// Graph is one successfully built, published graph.
type Graph struct {
	ID         string
	Registry   *registry.Registry
	Statements []domain.Statement
	BuiltAt    time.Time
}

// Engine owns the live graph. Rebuild and Tick must not run concurrently;
// readers (Graph, Err, Inspect) may run from any goroutine.
type Engine struct {
	env      generator.Env
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	maxDepth int

	live  atomic.Pointer[Graph]
	frame atomic.Uint64

	mu      sync.RWMutex
	lastErr error

	// ctx is the context of the Rebuild or Tick in progress, handed to
	// anomaly hooks fired from inside port propagation.
	ctx context.Context
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMaxDepth bounds how often one update may lap a wiring cycle.
func WithMaxDepth(n int) EngineOption {
	return func(e *Engine) {
		e.maxDepth = n
	}
}

// WithEnv sets the collaborators handed to generators.
func WithEnv(env generator.Env) EngineOption {
	return func(e *Engine) {
		e.env = env
	}
}

// NewEngine creates an engine with no graph loaded.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: port.DefaultMaxDepth,
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.env.Frame = e.Frame
	return e
}

// Rebuild builds stmts privately and publishes the result on success.
// On failure the running graph is kept and the error indicator is set;
// on success the indicator is cleared and the surface is blanked.
func (e *Engine) Rebuild(ctx context.Context, stmts []domain.Statement) error {
	restore := e.enter(ctx)
	defer restore()

	start := time.Now()
	id := uuid.NewString()
	builder := NewBuilder(e.env, WithBuildDepth(e.maxDepth), WithObserver(e.observe))

	reg, err := builder.Build(stmts)
	evt := &domain.RebuildEvent{
		EventBase:  domain.EventBase{Timestamp: start, Type: domain.EventRebuild},
		BuildID:    id,
		Statements: len(stmts),
		Err:        err,
	}

	if err != nil {
		e.fail(ctx, evt)
		return err
	}

	e.live.Store(&Graph{
		ID:         id,
		Registry:   reg,
		Statements: stmts,
		BuiltAt:    start,
	})
	e.setErr(nil)
	if e.env.Surface != nil {
		e.env.Surface.Clear(domain.Black)
	}

	evt.Generators = reg.Len()
	evt.Edges = len(reg.Edges())
	evt.Duration = time.Since(start)
	e.logger.InfoContext(ctx, "graph rebuilt",
		"build_id", id,
		"generators", evt.Generators,
		"edges", evt.Edges,
		"duration", evt.Duration)
	e.fireRebuild(ctx, evt)
	return nil
}

// Tick advances the frame counter and steps the live graph once.
// With no graph loaded it does nothing.
func (e *Engine) Tick(ctx context.Context) error {
	g := e.live.Load()
	if g == nil {
		return nil
	}

	restore := e.enter(ctx)
	defer restore()

	start := time.Now()
	frame := e.frame.Add(1)
	err := Step(g.Registry, frame)

	if err != nil {
		level := slog.LevelDebug
		if errors.Is(err, port.ErrPropagationDepth) {
			level = slog.LevelWarn
		}
		e.logger.Log(ctx, level, "tick failed", "frame", frame, "err", err)
	}

	if e.hooks.OnTick != nil {
		e.hooks.OnTick(ctx, &domain.TickEvent{
			EventBase:  domain.EventBase{Timestamp: start, Type: domain.EventTick},
			Frame:      frame,
			Generators: g.Registry.Len(),
			Duration:   time.Since(start),
			Err:        err,
		})
	}
	return err
}

// Graph returns the live graph, or nil before the first successful build.
func (e *Engine) Graph() *Graph {
	return e.live.Load()
}

// Frame returns the number of the last stepped frame.
func (e *Engine) Frame() uint64 {
	return e.frame.Load()
}

// Err returns the error of the last rebuild, or nil if it succeeded.
func (e *Engine) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastErr
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

func (e *Engine) setErr(err error) {
	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()
}

func (e *Engine) enter(ctx context.Context) func() {
	prev := e.ctx
	e.ctx = ctx
	return func() { e.ctx = prev }
}

// Reject records a rebuild that failed before statements could be built,
// e.g. because the script did not parse. The running graph is kept.
func (e *Engine) Reject(ctx context.Context, err error) {
	e.fail(ctx, &domain.RebuildEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRebuild},
		BuildID:   uuid.NewString(),
		Err:       err,
	})
}

func (e *Engine) fail(ctx context.Context, evt *domain.RebuildEvent) {
	e.setErr(evt.Err)
	evt.Duration = time.Since(evt.Timestamp)
	e.logger.WarnContext(ctx, "rebuild failed, keeping previous graph", "build_id", evt.BuildID, "err", evt.Err)
	e.fireRebuild(ctx, evt)
}

func (e *Engine) fireRebuild(ctx context.Context, evt *domain.RebuildEvent) {
	if e.hooks.OnRebuild != nil {
		e.hooks.OnRebuild(ctx, evt)
	}
}

// observe turns port sanitizer errors into anomaly events.
func (e *Engine) observe(p *port.Port, err error) {
	a := domain.Anomaly{
		Generator: p.Owner(),
		Port:      p.Name(),
		Kind:      port.AnomalyKind(err),
		Err:       err,
	}
	var ve *port.ValueError
	if errors.As(err, &ve) {
		a.Value = ve.Value
	}

	e.logger.DebugContext(e.ctx, "port value anomaly", "port", p.ID(), "kind", a.Kind, "err", err)
	if e.hooks.OnAnomaly != nil {
		e.hooks.OnAnomaly(e.ctx, &domain.AnomalyEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventAnomaly},
			Anomaly:   a,
		})
	}
}
