package generator

import (
	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/port"
)

// Rotate turns the surface by r radians. The rotation lasts until the frame's
// transform scope is popped.
type Rotate struct {
	base
	surface host.Surface
	r       *port.Port
}

func newRotate(env Env) *Rotate {
	g := &Rotate{surface: env.Surface, r: port.NewFloat("r", 0)}
	g.base = newBase(KindRotate, g.r)
	return g
}

func (g *Rotate) Step() error {
	g.surface.Rotate(g.r.Float())
	return nil
}
