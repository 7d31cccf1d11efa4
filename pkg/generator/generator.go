package generator

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/port"
	"github.com/aretw0/tendril/pkg/schema"
)

// Generator is a stepped unit owning a fixed set of ports.
type Generator interface {
	Kind() Kind
	// Ports returns the ports in declaration order.
	Ports() []*port.Port
	// Port looks a port up by name.
	Port(name string) (*port.Port, bool)
	// Step reads the current port values and updates ports or draws.
	// It must be safe to call before any wiring exists.
	Step() error
}

// Env carries the collaborators generators may use while stepping.
// Nil fields fall back to no-op implementations.
type Env struct {
	Surface     host.Surface
	Clock       host.Clock
	Keyboard    host.Keyboard
	Diagnostics host.Diagnostics
	// Frame returns the number of the frame being stepped.
	Frame func() uint64
}

func (e Env) withDefaults() Env {
	if e.Surface == nil {
		e.Surface = host.NopSurface{}
	}
	if e.Clock == nil {
		e.Clock = host.NewSystemClock()
	}
	if e.Keyboard == nil {
		e.Keyboard = host.NopKeyboard{}
	}
	if e.Diagnostics == nil {
		e.Diagnostics = host.NopDiagnostics{}
	}
	if e.Frame == nil {
		e.Frame = func() uint64 { return 0 }
	}
	return e
}

// New builds a generator of the given kind.
func New(kind Kind, env Env) (Generator, error) {
	env = env.withDefaults()

	switch kind {
	case KindTick:
		return newTick(), nil
	case KindTrig:
		return newTrig(env), nil
	case KindMath:
		return newMath(), nil
	case KindValue:
		return newValue(), nil
	case KindLog:
		return newLog(env), nil
	case KindPixel:
		return newPixel(env), nil
	case KindLine:
		return newLine(env), nil
	case KindGate:
		return newGate(env), nil
	case KindClear:
		return newClear(env), nil
	case KindRotate:
		return newRotate(env), nil
	case KindBeat:
		return newBeat(env), nil
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrUnknownVariant, kind)
}

// Schema returns the port types of g, keyed by port name.
func Schema(g Generator) schema.Schema {
	s := make(schema.Schema, len(g.Ports()))
	for _, p := range g.Ports() {
		s[p.Name()] = p.Type()
	}
	return s
}

// base implements the port bookkeeping shared by every kind.
type base struct {
	kind  Kind
	ports []*port.Port
	index map[string]*port.Port
}

func newBase(kind Kind, ports ...*port.Port) base {
	index := make(map[string]*port.Port, len(ports))
	for _, p := range ports {
		index[p.Name()] = p
	}
	return base{kind: kind, ports: ports, index: index}
}

func (b *base) Kind() Kind { return b.kind }

func (b *base) Ports() []*port.Port {
	out := make([]*port.Port, len(b.ports))
	copy(out, b.ports)
	return out
}

func (b *base) Port(name string) (*port.Port, bool) {
	p, ok := b.index[name]
	return p, ok
}

type update struct {
	port  *port.Port
	value any
}

// apply runs updates in order and stops at the first propagation failure.
func apply(updates ...update) error {
	for _, u := range updates {
		if err := u.port.Update(u.value); err != nil {
			return err
		}
	}
	return nil
}
