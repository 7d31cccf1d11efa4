package generator

import "github.com/aretw0/tendril/pkg/port"

// Value re-emits its own value every frame.
type Value struct {
	base
	value *port.Port
}

func newValue() *Value {
	g := &Value{value: port.NewFloat("value", 0)}
	g.base = newBase(KindValue, g.value)
	return g
}

func (g *Value) Step() error {
	return g.value.Update(g.value.Value())
}
