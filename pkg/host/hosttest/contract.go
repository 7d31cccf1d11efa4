// Package hosttest provides reusable conformance checks for host adapters.
package hosttest

import (
	"math"
	"testing"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/host"
)

// RunSurfaceContract verifies that a Surface tolerates every input a running
// graph can produce: out-of-range and non-finite coordinates, unbalanced scopes
// and extreme colors. None of these may panic.
func RunSurfaceContract(t *testing.T, s host.Surface) {
	t.Helper()

	odd := []float64{-1, 0, 1, -1.5, 1.5, math.NaN(), math.Inf(1), math.Inf(-1)}
	color := domain.Color{R: -2, G: math.NaN(), B: 7}

	t.Run("Plot_AnyCoordinate", func(t *testing.T) {
		for _, x := range odd {
			for _, y := range odd {
				s.Plot(x, y, color)
			}
		}
	})

	t.Run("Line_AnyCoordinate", func(t *testing.T) {
		for _, v := range odd {
			s.Line(v, -v, -v, v, color)
			s.Line(-1, -1, 1, 1, domain.White)
		}
	})

	t.Run("FillRect_NegativeSize", func(t *testing.T) {
		s.FillRect(0.5, 0.5, -1, -1, domain.Black)
		s.FillRect(-3, -3, 4, 4, domain.Black)
		s.FillRect(math.NaN(), 0, 1, 1, domain.Black)
	})

	t.Run("Scopes_Unbalanced", func(t *testing.T) {
		s.Pop()
		s.Push()
		s.Rotate(math.Pi / 4)
		s.Rotate(math.NaN())
		s.Pop()
		s.Pop()
	})

	t.Run("Clear", func(t *testing.T) {
		s.Clear(domain.Black)
		s.Clear(color)
	})
}
