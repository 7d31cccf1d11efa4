package generator

import (
	"math"

	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/port"
)

// Trig emits sin, cos and tan of a wall-clock phase.
type Trig struct {
	base
	clock                    host.Clock
	frequency, sin, cos, tan *port.Port
}

func newTrig(env Env) *Trig {
	g := &Trig{
		clock:     env.Clock,
		frequency: port.NewFloat("frequency", 10),
		sin:       port.NewFloat("sin", 0),
		cos:       port.NewFloat("cos", 0),
		tan:       port.NewFloat("tan", 0),
	}
	g.base = newBase(KindTrig, g.frequency, g.sin, g.cos, g.tan)
	return g
}

// Phase returns the angle (radians) at time now (ms) for frequency hz.
func Phase(now, hz float64) float64 {
	return now * 2 * math.Pi / 1000 * hz
}

func (g *Trig) Step() error {
	m := Phase(g.clock.Now(), g.frequency.Float())
	return apply(
		update{g.sin, math.Sin(m)},
		update{g.cos, math.Cos(m)},
		update{g.tan, math.Tan(m)},
	)
}
