package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		in      string
		want    Endpoint
		wantErr bool
	}{
		{"t.tick", Endpoint{Generator: "t", Port: "tick"}, false},
		{"  log.value0 ", Endpoint{Generator: "log", Port: "value0"}, false},
		{"noport", Endpoint{}, true},
		{".tick", Endpoint{}, true},
		{"t.", Endpoint{}, true},
	}

	for _, tt := range tests {
		got, err := ParseEndpoint(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrMalformedStatement, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestValidate_Statements(t *testing.T) {
	assert.NoError(t, Validate(Declaration{Kind: "Tick", Name: "t"}))
	assert.ErrorIs(t, Validate(Declaration{Name: "t"}), ErrMalformedStatement)
	assert.ErrorIs(t, Validate(Declaration{Kind: "Tick"}), ErrMalformedStatement)
	assert.ErrorIs(t, Validate(nil), ErrMalformedStatement)

	ok := Connection{From: Endpoint{"a", "x"}, To: Endpoint{"b", "y"}}
	assert.NoError(t, Validate(ok))
	assert.ErrorIs(t, Validate(Connection{To: Endpoint{"b", "y"}}), ErrMalformedStatement)
	assert.ErrorIs(t, Validate(Connection{From: Endpoint{"a", "x"}}), ErrMalformedStatement)
	assert.Equal(t, "connect a.x -> b.y", ok.String())
}

func TestBuildError_Unwrap(t *testing.T) {
	err := &BuildError{Index: 2, Statement: Declaration{Kind: "Nope", Name: "n"}, Err: ErrUnknownVariant}
	assert.True(t, errors.Is(err, ErrUnknownVariant))
	assert.True(t, IsBuildError(err))
	assert.Contains(t, err.Error(), "statement 3")

	early := &BuildError{Index: -1, Err: errors.New("bad yaml")}
	assert.Equal(t, "build failed: bad yaml", early.Error())
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := LifecycleHooks{OnTick: func(context.Context, *TickEvent) { calls = append(calls, "a") }}
	b := LifecycleHooks{
		OnTick:    func(context.Context, *TickEvent) { calls = append(calls, "b") },
		OnRebuild: func(context.Context, *RebuildEvent) { calls = append(calls, "rebuild") },
	}

	m := a.Merge(b)
	m.OnTick(context.Background(), &TickEvent{})
	m.OnRebuild(context.Background(), &RebuildEvent{})
	assert.Nil(t, m.OnAnomaly)
	assert.Equal(t, []string{"a", "b", "rebuild"}, calls)
}

func TestColor_Abs(t *testing.T) {
	c := Color{R: -0.5, G: 2, B: 0.25}.Abs()
	assert.Equal(t, Color{R: 0.5, G: 1, B: 0.25}, c)

	assert.Equal(t, Color{R: 0, G: 1, B: 0}, Color{R: -1, G: 3, B: 0}.Clamp())
}
