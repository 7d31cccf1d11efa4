package generator

import (
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/port"
)

// Clear blanks a rectangle while trig is positive.
type Clear struct {
	base
	surface          host.Surface
	x, y, w, h, trig *port.Port
}

func newClear(env Env) *Clear {
	g := &Clear{
		surface: env.Surface,
		x:       port.NewFloat("x", -3),
		y:       port.NewFloat("y", -3),
		w:       port.NewFloat("w", 4),
		h:       port.NewFloat("h", 4),
		trig:    port.NewFloat("trig", 0),
	}
	g.base = newBase(KindClear, g.x, g.y, g.w, g.h, g.trig)
	return g
}

func (g *Clear) Step() error {
	if g.trig.Float() > 0 {
		g.surface.Push()
		g.surface.FillRect(g.x.Float(), g.y.Float(), g.w.Float(), g.h.Float(), domain.Black)
		g.surface.Pop()
	}
	return nil
}
