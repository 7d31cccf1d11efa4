package host

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/tendril/pkg/domain"
)

// Surface is the rendering target of drawing generators.
type Surface interface {
	Plot(x, y float64, c domain.Color)
	Line(x1, y1, x2, y2 float64, c domain.Color)
	FillRect(x, y, w, h float64, c domain.Color)
	// Rotate applies a rotation (radians) to the current transform scope.
	Rotate(angle float64)
	// Push opens a transform scope; Pop restores the previous one.
	Push()
	Pop()
	Clear(c domain.Color)
}

// Clock returns monotonic milliseconds.
type Clock interface {
	Now() float64
}

// Keyboard reports whether a key (by key code) is held down.
type Keyboard interface {
	IsKeyDown(code int) bool
}

// Record is one diagnostic line emitted by a Log generator.
type Record struct {
	Frame     uint64 `json:"frame"`
	Generator string `json:"generator"`
	Port      string `json:"port"`
	Value     any    `json:"value"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	v := plain(r)
	v.Value = domain.JSONValue(r.Value)
	return json.Marshal(v)
}

func (r Record) String() string {
	return fmt.Sprintf("%s.%s : %v", r.Generator, r.Port, r.Value)
}

// Diagnostics receives diagnostic records.
type Diagnostics interface {
	Emit(r Record)
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() float64

func (f ClockFunc) Now() float64 { return f() }

// KeyboardFunc adapts a function to Keyboard.
type KeyboardFunc func(code int) bool

func (f KeyboardFunc) IsKeyDown(code int) bool { return f(code) }

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(r Record)

func (f DiagnosticsFunc) Emit(r Record) { f(r) }
