package generator

import (
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/port"
)

// Pixel plots one pixel per frame.
type Pixel struct {
	base
	surface       host.Surface
	x, y, r, g, b *port.Port
}

func newPixel(env Env) *Pixel {
	g := &Pixel{
		surface: env.Surface,
		x:       port.NewFloat("x", 0),
		y:       port.NewFloat("y", 0),
		r:       port.NewFloat("r", 1),
		g:       port.NewFloat("g", 1),
		b:       port.NewFloat("b", 1),
	}
	g.base = newBase(KindPixel, g.x, g.y, g.r, g.g, g.b)
	return g
}

func (g *Pixel) Step() error {
	c := domain.Color{R: g.r.Float(), G: g.g.Float(), B: g.b.Float()}.Abs()
	g.surface.Plot(Wrap(g.x.Float()), Wrap(g.y.Float()), c)
	return nil
}
