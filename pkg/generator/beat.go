package generator

import (
	"fmt"
	"strings"

	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/port"
	"github.com/aretw0/tendril/pkg/schema"
)

// DefaultPattern is the Beat pattern used when none is declared.
const DefaultPattern = "x--x--x--"

// Beat walks a cyclic pattern of fire/rest symbols at a fixed tempo.
type Beat struct {
	base
	clock                 host.Clock
	pattern, in, bpm, out *port.Port
	last                  float64
}

func newBeat(env Env) *Beat {
	g := &Beat{
		clock:   env.Clock,
		pattern: port.NewAny("pattern", DefaultPattern, port.WithType(schema.OneOf(schema.String(), schema.Slice(schema.String())))),
		in:      port.NewFloat("in", 1),
		bpm:     port.NewFloat("bpm", 120),
		out:     port.NewFloat("out", 0),
	}
	g.last = env.Clock.Now()
	g.base = newBase(KindBeat, g.pattern, g.in, g.bpm, g.out)
	return g
}

// Fires reports whether a pattern symbol triggers the output.
func Fires(sym string) bool {
	return sym == "x" || sym == "^" || sym == "*"
}

// Period returns the milliseconds between pattern steps at bpm.
func Period(bpm float64) float64 {
	return 60000 / bpm
}

// Pattern returns the current symbol sequence.
func (g *Beat) Pattern() []string {
	return g.symbols()
}

// symbols converts the pattern port to a symbol sequence on first use and keeps
// the converted form in the port.
func (g *Beat) symbols() []string {
	var seq []string
	switch v := g.pattern.Value().(type) {
	case []string:
		return v
	case string:
		seq = strings.Split(v, "")
	case []any:
		seq = make([]string, len(v))
		for i, s := range v {
			seq[i] = fmt.Sprint(s)
		}
	case nil:
		seq = []string{}
	default:
		seq = strings.Split(fmt.Sprint(v), "")
	}
	g.pattern.Set(seq)
	return seq
}

func (g *Beat) Step() error {
	period := Period(g.bpm.Float())
	seq := g.symbols()
	now := g.clock.Now()
	if len(seq) == 0 || !(now >= g.last+period) {
		return nil
	}

	sym := seq[0]
	next := make([]string, 0, len(seq))
	next = append(next, seq[1:]...)
	next = append(next, sym)
	g.pattern.Set(next)
	g.last = now

	if Fires(sym) {
		return g.out.Update(g.in.Value())
	}
	return g.out.Update(0.0)
}
