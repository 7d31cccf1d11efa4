package generator

import (
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/port"
)

// Line draws a segment from the previous frame's position to the current one.
type Line struct {
	base
	surface       host.Surface
	x, y, r, g, b *port.Port

	lastX, lastY float64
	first        bool
}

func newLine(env Env) *Line {
	g := &Line{
		surface: env.Surface,
		x:       port.NewFloat("x", 0),
		y:       port.NewFloat("y", 0),
		r:       port.NewFloat("r", 1),
		g:       port.NewFloat("g", 1),
		b:       port.NewFloat("b", 1),
		first:   true,
	}
	g.base = newBase(KindLine, g.x, g.y, g.r, g.g, g.b)
	return g
}

func (g *Line) Step() error {
	x, y := g.x.Float(), g.y.Float()
	if !g.first {
		c := domain.Color{R: g.r.Float(), G: g.g.Float(), B: g.b.Float()}.Clamp()
		g.surface.Push()
		g.surface.Line(Wrap(g.lastX), Wrap(g.lastY), Wrap(x), Wrap(y), c)
		g.surface.Pop()
	}
	g.lastX, g.lastY = x, y
	g.first = false
	return nil
}
