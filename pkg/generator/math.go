package generator

import (
	"math"

	"github.com/aretw0/tendril/pkg/port"
)

// Math computes five binary operations of a and b every frame.
// Division and remainder by zero yield ±Inf or NaN; the output ports flag them
// as anomalies but never fail.
type Math struct {
	base
	a, b                                    *port.Port
	aPlusB, aTimesB, aMinusB, aOverB, aModB *port.Port
}

func newMath() *Math {
	g := &Math{
		a:       port.NewFloat("a", 0),
		b:       port.NewFloat("b", 0),
		aPlusB:  port.NewFloat("aPlusB", 0),
		aTimesB: port.NewFloat("aTimesB", 0),
		aMinusB: port.NewFloat("aMinusB", 0),
		aOverB:  port.NewFloat("aOverB", 0),
		aModB:   port.NewFloat("aModB", 0),
	}
	g.base = newBase(KindMath, g.a, g.b, g.aPlusB, g.aTimesB, g.aMinusB, g.aOverB, g.aModB)
	return g
}

func (g *Math) Step() error {
	a, b := g.a.Float(), g.b.Float()
	return apply(
		update{g.aPlusB, a + b},
		update{g.aTimesB, a * b},
		update{g.aMinusB, a - b},
		update{g.aOverB, a / b},
		update{g.aModB, math.Mod(a, b)},
	)
}
