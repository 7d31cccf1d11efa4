package generator

import (
	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/port"
)

// Gate passes in to out while its key is held.
type Gate struct {
	base
	keyboard              host.Keyboard
	key, in, out, latches *port.Port
}

func newGate(env Env) *Gate {
	g := &Gate{
		keyboard: env.Keyboard,
		key:      port.NewKey("key", "q"),
		in:       port.NewFloat("in", 1),
		out:      port.NewFloat("out", 0),
		latches:  port.NewBool("latches", false),
	}
	g.base = newBase(KindGate, g.key, g.in, g.out, g.latches)
	return g
}

func (g *Gate) Step() error {
	if g.keyboard.IsKeyDown(g.key.Int()) {
		return g.out.Update(g.in.Value())
	}
	if !g.latches.Bool() {
		return g.out.Update(0.0)
	}
	return nil
}
