package observability

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/pkg/dsl"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func divideByZero() *dsl.Builder {
	return dsl.New().
		Declare("Math", "m", dsl.Set("b", 0.0)).
		Declare("Tick", "t").
		Connect("t.tick", "m.a")
}

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics()
	eng := tendril.New(tendril.WithLifecycleHooks(m.Hooks()))
	ctx := context.Background()

	require.NoError(t, eng.Rebuild(ctx, divideByZero().MustBuild()))
	require.NoError(t, eng.Tick(ctx))
	require.NoError(t, eng.Tick(ctx))
	assert.Error(t, eng.RebuildScript(ctx, []byte("- {kind: Nope, name: n}")))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.rebuilds.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rebuilds.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.generators), "failed rebuild keeps the gauge")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.edges))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.tickErrors))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.frame))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.anomalies.WithLabelValues("non_finite")), 2.0)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	eng := tendril.New(tendril.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, eng.Rebuild(context.Background(), divideByZero().MustBuild()))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tendril_rebuilds_total{result="ok"} 1`)
	assert.Contains(t, string(body), "tendril_generators 2")
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := NewMetrics().Hooks().Merge(LogHooks(logger))
	eng := tendril.New(tendril.WithLifecycleHooks(hooks))
	ctx := context.Background()

	require.NoError(t, eng.Rebuild(ctx, divideByZero().MustBuild()))
	require.NoError(t, eng.Tick(ctx))
	assert.Error(t, eng.RebuildScript(ctx, []byte("- {kind: Nope, name: n}")))

	out := buf.String()
	assert.Contains(t, out, "msg=rebuild ")
	assert.Contains(t, out, "generators=2")
	assert.Contains(t, out, "msg=anomaly")
	assert.Contains(t, out, "kind=non_finite")
	assert.Contains(t, out, "msg=rebuild_rejected")
}
