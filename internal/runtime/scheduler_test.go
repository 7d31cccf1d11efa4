package runtime_test

import (
	"errors"
	"testing"

	"github.com/aretw0/tendril/internal/runtime"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_RegistrationOrder(t *testing.T) {
	// The log is registered before the tick it listens to, so it reports the
	// previous frame's value.
	reg, err := newBuilder().Build([]domain.Statement{
		decl("Log", "log", nil),
		decl("Tick", "t", map[string]any{"incr": 0.5}),
		conn("t.tick", "log.value0"),
	})
	require.NoError(t, err)

	log, _ := reg.Get("log")
	v0, _ := log.Port("value0")

	require.NoError(t, runtime.Step(reg, 1))
	assert.Equal(t, -0.5, v0.Value())
	require.NoError(t, runtime.Step(reg, 2))
	assert.Equal(t, 0.0, v0.Value())
}

func TestStep_DepthOverflowAbortsFrame(t *testing.T) {
	reg, err := newBuilder(runtime.WithBuildDepth(8)).Build([]domain.Statement{
		decl("Value", "a", nil),
		decl("Value", "b", nil),
		decl("Tick", "after", nil),
		conn("a.value", "b.value"),
		conn("b.value", "a.value"),
	})
	require.NoError(t, err)

	err = runtime.Step(reg, 5)
	require.ErrorIs(t, err, port.ErrPropagationDepth)

	var te *domain.TickError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, uint64(5), te.Frame)
	assert.Equal(t, "a", te.Generator)

	after, _ := reg.Get("after")
	tick, _ := after.Port("tick")
	assert.Equal(t, -1.0, tick.Float(), "generators after the failure are not stepped")
}

func TestStep_NilRegistry(t *testing.T) {
	assert.NoError(t, runtime.Step(nil, 1))
}
