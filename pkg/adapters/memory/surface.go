package memory

import (
	"fmt"
	"sync"

	"github.com/aretw0/tendril/pkg/domain"
)

// Op is one recorded surface call.
type Op struct {
	Name  string
	Args  []float64
	Color domain.Color
}

func (o Op) String() string {
	return fmt.Sprintf("%s%v", o.Name, o.Args)
}

// Surface records every drawing call. Safe for concurrent use.
type Surface struct {
	mu    sync.Mutex
	ops   []Op
	depth int
}

// NewSurface creates an empty recording surface.
func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) record(name string, c domain.Color, args ...float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, Op{Name: name, Args: args, Color: c})
}

func (s *Surface) Plot(x, y float64, c domain.Color) { s.record("plot", c, x, y) }

func (s *Surface) Line(x1, y1, x2, y2 float64, c domain.Color) {
	s.record("line", c, x1, y1, x2, y2)
}

func (s *Surface) FillRect(x, y, w, h float64, c domain.Color) {
	s.record("fill", c, x, y, w, h)
}

func (s *Surface) Rotate(angle float64) { s.record("rotate", domain.Color{}, angle) }

func (s *Surface) Push() {
	s.record("push", domain.Color{})
	s.mu.Lock()
	s.depth++
	s.mu.Unlock()
}

// Pop records the call; popping an empty stack is ignored.
func (s *Surface) Pop() {
	s.record("pop", domain.Color{})
	s.mu.Lock()
	if s.depth > 0 {
		s.depth--
	}
	s.mu.Unlock()
}

func (s *Surface) Clear(c domain.Color) { s.record("clear", c) }

// Ops returns a copy of the recorded calls.
func (s *Surface) Ops() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Op, len(s.ops))
	copy(out, s.ops)
	return out
}

// Names returns the recorded call names in order.
func (s *Surface) Names() []string {
	ops := s.Ops()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

// Depth returns the number of open transform scopes.
func (s *Surface) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth
}

// Reset discards the recorded calls.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = nil
	s.depth = 0
}
