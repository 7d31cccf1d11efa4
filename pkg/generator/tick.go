package generator

import "github.com/aretw0/tendril/pkg/port"

// Tick is a ramp oscillator with jump-to-opposite-bound edges.
type Tick struct {
	base
	tick, min, max, incr *port.Port
}

func newTick() *Tick {
	g := &Tick{
		tick: port.NewFloat("tick", -1),
		min:  port.NewFloat("min", -1),
		max:  port.NewFloat("max", 1),
		incr: port.NewFloat("incr", 0.01),
	}
	g.base = newBase(KindTick, g.tick, g.min, g.max, g.incr)
	return g
}

func (g *Tick) Step() error {
	t := g.tick.Float() + g.incr.Float()
	lo, hi := g.min.Float(), g.max.Float()
	if t >= hi {
		t = lo
	} else if t <= lo {
		t = hi
	}
	return g.tick.Update(t)
}
