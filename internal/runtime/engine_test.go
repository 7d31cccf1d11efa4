package runtime_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/tendril/internal/runtime"
	"github.com/aretw0/tendril/pkg/adapters/memory"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/generator"
	"github.com/aretw0/tendril/pkg/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	engine  *runtime.Engine
	surface *memory.Surface
	diag    *memory.Diagnostics
}

func newHarness(opts ...runtime.EngineOption) *harness {
	h := &harness{surface: memory.NewSurface(), diag: memory.NewDiagnostics()}
	env := generator.Env{
		Surface:     h.surface,
		Clock:       memory.NewClock(0),
		Keyboard:    memory.NewKeyboard(),
		Diagnostics: h.diag,
	}
	h.engine = runtime.NewEngine(append([]runtime.EngineOption{runtime.WithEnv(env)}, opts...)...)
	return h
}

func TestEngine_RebuildPublishesGraph(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	assert.Nil(t, h.engine.Graph())

	require.NoError(t, h.engine.Rebuild(ctx, []domain.Statement{decl("Tick", "t", nil)}))

	g := h.engine.Graph()
	require.NotNil(t, g)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, []string{"t"}, g.Registry.Names())
	assert.NoError(t, h.engine.Err())
	assert.Equal(t, []string{"clear"}, h.surface.Names(), "successful rebuild blanks the surface")
}

func TestEngine_FailedRebuildKeepsRunningGraph(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.engine.Rebuild(ctx, []domain.Statement{
		decl("Tick", "t", nil),
		decl("Log", "log", nil),
		conn("t.tick", "log.value0"),
	}))
	before := h.engine.Graph()
	require.NoError(t, h.engine.Tick(ctx))

	err := h.engine.Rebuild(ctx, []domain.Statement{
		decl("Value", "v", nil),
		conn("v.value", "ghost.value"),
	})
	require.ErrorIs(t, err, domain.ErrUnknownGenerator)

	assert.Same(t, before, h.engine.Graph())
	assert.ErrorIs(t, h.engine.Err(), domain.ErrUnknownGenerator)

	tick, _ := before.Registry.Get("t")
	p, _ := tick.Port("tick")
	assert.InDelta(t, -0.99, p.Float(), 1e-9, "old graph state is untouched")
	require.Len(t, p.Subscribers(), 1, "old wiring is untouched")
	assert.True(t, p.Wired())
	log, _ := before.Registry.Get("log")
	dst, _ := log.Port("value0")
	assert.Same(t, dst, p.Subscribers()[0])
	assert.True(t, dst.Wired())

	require.NoError(t, h.engine.Tick(ctx))
	assert.Len(t, h.diag.Records(), 2, "old wiring keeps feeding the Log")
	assert.InDelta(t, -0.98, dst.Float(), 1e-9)

	require.NoError(t, h.engine.Rebuild(ctx, []domain.Statement{decl("Value", "v", nil)}))
	assert.NoError(t, h.engine.Err(), "indicator clears on the next success")
}

func TestEngine_RebuildDiscardsOldState(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	stmts := []domain.Statement{decl("Tick", "t", nil)}
	require.NoError(t, h.engine.Rebuild(ctx, stmts))
	for i := 0; i < 10; i++ {
		require.NoError(t, h.engine.Tick(ctx))
	}

	require.NoError(t, h.engine.Rebuild(ctx, stmts))
	tick, _ := h.engine.Graph().Registry.Get("t")
	p, _ := tick.Port("tick")
	assert.Equal(t, -1.0, p.Float())
}

func TestEngine_TickWithoutGraph(t *testing.T) {
	h := newHarness()
	assert.NoError(t, h.engine.Tick(context.Background()))
	assert.Equal(t, uint64(0), h.engine.Frame())
}

func TestEngine_LogUsesFrameNumber(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.engine.Rebuild(ctx, []domain.Statement{
		decl("Value", "v", map[string]any{"value": 0.25}),
		decl("Log", "log", nil),
		conn("v.value", "log.value2"),
	}))
	require.NoError(t, h.engine.Tick(ctx))
	require.NoError(t, h.engine.Tick(ctx))

	recs := h.diag.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, uint64(2), recs[1].Frame)
	assert.Equal(t, []string{"log.value2 : 0.25", "log.value2 : 0.25"}, h.diag.Lines())
}

func TestEngine_Hooks(t *testing.T) {
	var (
		rebuilds  []*domain.RebuildEvent
		ticks     []*domain.TickEvent
		anomalies []*domain.AnomalyEvent
	)
	type ctxKey struct{}
	h := newHarness(
		runtime.WithMaxDepth(4),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnRebuild: func(_ context.Context, e *domain.RebuildEvent) { rebuilds = append(rebuilds, e) },
			OnTick:    func(_ context.Context, e *domain.TickEvent) { ticks = append(ticks, e) },
			OnAnomaly: func(ctx context.Context, e *domain.AnomalyEvent) {
				assert.Equal(t, "tick-ctx", ctx.Value(ctxKey{}))
				anomalies = append(anomalies, e)
			},
		}),
	)

	require.NoError(t, h.engine.Rebuild(context.Background(), []domain.Statement{
		decl("Math", "m", map[string]any{"a": 1}),
	}))
	require.Len(t, rebuilds, 1)
	assert.Equal(t, 1, rebuilds[0].Generators)
	assert.NoError(t, rebuilds[0].Err)

	ctx := context.WithValue(context.Background(), ctxKey{}, "tick-ctx")
	require.NoError(t, h.engine.Tick(ctx))
	require.Len(t, ticks, 1)
	assert.Equal(t, uint64(1), ticks[0].Frame)

	// a/0 and a%0
	require.Len(t, anomalies, 2)
	assert.Equal(t, "m", anomalies[0].Generator)
	assert.Equal(t, "aOverB", anomalies[0].Port)
	assert.Equal(t, domain.AnomalyNonFinite, anomalies[0].Kind)
	assert.ErrorIs(t, anomalies[1], port.ErrNonFinite)

	_ = h.engine.Rebuild(context.Background(), []domain.Statement{decl("Nope", "n", nil)})
	require.Len(t, rebuilds, 2)
	assert.ErrorIs(t, rebuilds[1].Err, domain.ErrUnknownVariant)
}

func TestEngine_LongAcyclicChainTicks(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	n := port.DefaultMaxDepth + 6
	stmts := []domain.Statement{}
	for i := 0; i < n; i++ {
		stmts = append(stmts, decl("Value", fmt.Sprintf("v%d", i), nil))
		if i > 0 {
			stmts = append(stmts, conn(fmt.Sprintf("v%d.value", i-1), fmt.Sprintf("v%d.value", i)))
		}
	}
	require.NoError(t, h.engine.Rebuild(ctx, stmts))
	require.NoError(t, h.engine.Tick(ctx))

	first, _ := h.engine.Graph().Registry.Get("v0")
	require.NoError(t, first.Ports()[0].Update(5))
	last, _ := h.engine.Graph().Registry.Get(fmt.Sprintf("v%d", n-1))
	assert.Equal(t, 5.0, last.Ports()[0].Float())
}

func TestEngine_TickErrorReportedAndRecovered(t *testing.T) {
	h := newHarness(runtime.WithMaxDepth(4))
	ctx := context.Background()
	require.NoError(t, h.engine.Rebuild(ctx, []domain.Statement{
		decl("Value", "a", nil),
		conn("a.value", "a.value"),
	}))

	err := h.engine.Tick(ctx)
	var te *domain.TickError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "a", te.Generator)

	assert.Error(t, h.engine.Tick(ctx), "each tick starts fresh and fails again")
	assert.Equal(t, uint64(2), h.engine.Frame())
}

func TestEngine_Inspect(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	snap := h.engine.Inspect()
	assert.Empty(t, snap.Generators)
	assert.Empty(t, snap.BuildID)

	require.NoError(t, h.engine.Rebuild(ctx, []domain.Statement{
		decl("Tick", "t", nil),
		decl("Pixel", "p", nil),
		conn("t.tick", "p.x"),
	}))
	require.NoError(t, h.engine.Tick(ctx))
	_ = h.engine.Rebuild(ctx, []domain.Statement{decl("Bogus", "b", nil)})

	snap = h.engine.Inspect()
	assert.Equal(t, h.engine.Graph().ID, snap.BuildID)
	assert.Equal(t, uint64(1), snap.Frame)
	require.Len(t, snap.Generators, 2)
	assert.Equal(t, "Tick", snap.Generators[0].Kind)
	tick := snap.Generators[0].Ports[0]
	assert.Equal(t, "tick", tick.Name)
	assert.True(t, tick.Wired)
	assert.InDelta(t, -0.99, tick.Value, 1e-9)
	assert.Len(t, snap.Edges, 1)
	assert.Contains(t, snap.LastError, "unknown generator kind")
}

func TestEngine_Reject(t *testing.T) {
	var events []*domain.RebuildEvent
	h := newHarness(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnRebuild: func(_ context.Context, e *domain.RebuildEvent) { events = append(events, e) },
	}))
	ctx := context.Background()
	require.NoError(t, h.engine.Rebuild(ctx, []domain.Statement{decl("Tick", "t", nil)}))
	live := h.engine.Graph()

	bad := &domain.BuildError{Index: -1, Err: domain.ErrMalformedStatement}
	h.engine.Reject(ctx, bad)

	assert.Same(t, live, h.engine.Graph())
	assert.ErrorIs(t, h.engine.Err(), domain.ErrMalformedStatement)
	require.Len(t, events, 2)
	assert.Equal(t, bad, events[1].Err)
	assert.NotEmpty(t, events[1].BuildID)
}
