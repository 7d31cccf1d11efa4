package port

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPort_DefaultIsSanitized(t *testing.T) {
	p := New("x", "2.5", WithSanitizer(Float))
	assert.Equal(t, 2.5, p.Value())

	raw := New("v", []string{"a"})
	assert.Equal(t, []string{"a"}, raw.Value(), "no sanitizer stores verbatim")
}

func TestPort_UpdateStoresSanitizedValue(t *testing.T) {
	inputs := []any{1, "3px", 4.25, "nope", true, int64(-7)}
	p := NewFloat("x", 0)

	for _, in := range inputs {
		want, _ := Float(in)
		require.NoError(t, p.Update(in))
		got := p.Value().(float64)
		if math.IsNaN(want.(float64)) {
			assert.True(t, math.IsNaN(got), "update(%v)", in)
			continue
		}
		assert.Equal(t, want, got, "update(%v)", in)
	}
}

func TestPort_SynchronousChain(t *testing.T) {
	a := NewFloat("a", 0)
	b := NewFloat("b", 0)
	c := New("c", nil, WithSanitizer(func(raw any) (any, error) {
		f, err := Float(raw)
		return f.(float64) * 2, err
	}))

	a.AddListener(b)
	b.AddListener(c)

	require.NoError(t, a.Update(5))
	assert.Equal(t, 5.0, b.Value())
	assert.Equal(t, 10.0, c.Value())
}

func TestPort_FanOutOrderAndCallback(t *testing.T) {
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}

	src := New("src", 0, WithCallback(record("src")))
	first := New("first", 0, WithCallback(record("first")))
	second := New("second", 0, WithCallback(record("second")))
	leaf := New("leaf", 0, WithCallback(record("leaf")))

	src.AddListener(first)
	src.AddListener(second)
	first.AddListener(leaf)

	require.NoError(t, src.Update(1))
	// depth-first in subscriber order, own callback after fan-out
	assert.Equal(t, []string{"leaf", "first", "second", "src"}, order)
}

func TestPort_DuplicateWiringPropagatesTwice(t *testing.T) {
	count := 0
	src := New("src", 0)
	dst := New("dst", 0, WithCallback(func() { count++ }))

	src.AddListener(dst)
	src.AddListener(dst)

	require.NoError(t, src.Update(1))
	assert.Equal(t, 2, count)
	assert.Len(t, src.Subscribers(), 2)
}

func TestPort_WiredIsMonotonic(t *testing.T) {
	a := New("a", 0)
	b := New("b", 0)
	c := New("c", 0)
	assert.False(t, a.Wired())

	a.AddListener(b)
	assert.True(t, a.Wired())
	assert.True(t, b.Wired())
	assert.False(t, c.Wired())

	require.NoError(t, a.Update(3))
	require.NoError(t, b.Update(4))
	assert.True(t, a.Wired())
	assert.True(t, b.Wired())
}

func TestPort_CycleHitsLapLimit(t *testing.T) {
	a := NewFloat("a", 0)
	b := NewFloat("b", 0)
	a.Bind("g1")
	b.Bind("g2")
	a.AddListener(b)
	b.AddListener(a)
	a.SetMaxDepth(10)

	err := a.Update(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPropagationDepth))

	var pe *PropagationError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "g1.a", pe.Origin)
	assert.Equal(t, "g1.a", pe.At)
	assert.Equal(t, 11, pe.Laps)
	assert.Contains(t, err.Error(), "wiring cycle")
	assert.Equal(t, 1.0, b.Value(), "values committed before the cut stay")

	err = a.Update(2)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 11, pe.Laps, "in-flight marks are released after a cut")
}

func TestPort_LongAcyclicChainPropagates(t *testing.T) {
	chain := make([]*Port, DefaultMaxDepth+2)
	for i := range chain {
		chain[i] = NewFloat("value", 0)
		if i > 0 {
			chain[i-1].AddListener(chain[i])
		}
	}

	require.NoError(t, chain[0].Update(7))
	assert.Equal(t, 7.0, chain[len(chain)-1].Float())
	require.NoError(t, chain[0].Update(8), "a second update is not cut either")
	assert.Equal(t, 8.0, chain[len(chain)-1].Float())
}

func TestPort_DiamondIsNotACycle(t *testing.T) {
	src := NewFloat("src", 0)
	left := NewFloat("left", 0)
	right := NewFloat("right", 0)
	sink := NewFloat("sink", 0)
	src.SetMaxDepth(1)
	src.AddListener(left)
	src.AddListener(right)
	left.AddListener(sink)
	right.AddListener(sink)

	require.NoError(t, src.Update(3))
	assert.Equal(t, 3.0, sink.Float())
}

func TestPort_ObserverReceivesAnomalies(t *testing.T) {
	var got []error
	p := NewFloat("a", 0)
	p.Observe(func(_ *Port, err error) { got = append(got, err) })

	require.NoError(t, p.Update("hello"))
	require.NoError(t, p.Update(math.Inf(1)))
	require.NoError(t, p.Update(2))

	require.Len(t, got, 2)
	assert.ErrorIs(t, got[0], ErrNonNumeric)
	assert.ErrorIs(t, got[1], ErrNonFinite)
	assert.Equal(t, 2.0, p.Float())
}

func TestPort_Accessors(t *testing.T) {
	f := NewFloat("f", 1)
	assert.Equal(t, 1.0, f.Float())
	assert.False(t, f.Bool())
	assert.Equal(t, -1, f.Int())

	k := NewKey("key", "q")
	assert.Equal(t, 81, k.Int())

	s := NewAny("s", "text")
	assert.True(t, math.IsNaN(s.Float()))
	assert.Equal(t, "s", s.ID())
	s.Bind("gen")
	assert.Equal(t, "gen.s", s.ID())
	assert.Equal(t, "gen", s.Owner())
}
