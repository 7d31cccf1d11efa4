package generator

import (
	"fmt"
	"sort"

	"github.com/aretw0/tendril/pkg/domain"
)

// Kind enumerates the generator variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindTick
	KindTrig
	KindMath
	KindValue
	KindLog
	KindPixel
	KindLine
	KindGate
	KindClear
	KindRotate
	KindBeat
)

// codes maps the script code of each kind. The first code is canonical.
var codes = map[Kind][]string{
	KindTick:   {"Tick"},
	KindTrig:   {"Trig"},
	KindMath:   {"Math"},
	KindValue:  {"Value"},
	KindLog:    {"Log"},
	KindPixel:  {"Pixel"},
	KindLine:   {"Line"},
	KindGate:   {"Gate"},
	KindClear:  {"Clear"},
	KindRotate: {"Rotate"},
	KindBeat:   {"Beats", "Beat"},
}

var descriptions = map[Kind]string{
	KindTick:   "Ramp oscillator: advances tick by incr, jumping to the opposite bound at min/max.",
	KindTrig:   "sin/cos/tan of a wall-clock phase at the given frequency.",
	KindMath:   "Sum, product, difference, quotient and remainder of a and b.",
	KindValue:  "Re-emits its value every frame.",
	KindLog:    "Prints every wired port of its value0..value9 bank.",
	KindPixel:  "Plots one pixel at (x, y) colored |r|,|g|,|b|.",
	KindLine:   "Draws from the previous (x, y) to the current one.",
	KindGate:   "Passes in to out while key is held; latches keeps the last value.",
	KindClear:  "Clears the rectangle (x, y, w, h) while trig > 0.",
	KindRotate: "Rotates the surface by r radians for the rest of the frame.",
	KindBeat:   "Steps a cyclic pattern at bpm; x ^ * fire in, anything else rests.",
}

var byCode = func() map[string]Kind {
	m := make(map[string]Kind)
	for k, cs := range codes {
		for _, c := range cs {
			m[c] = k
		}
	}
	return m
}()

// ParseKind resolves a script code to a Kind.
func ParseKind(code string) (Kind, error) {
	if k, ok := byCode[code]; ok {
		return k, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", domain.ErrUnknownVariant, code)
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(codes))
	for k := range codes {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (k Kind) String() string {
	if cs, ok := codes[k]; ok {
		return cs[0]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Aliases returns every script code accepted for k.
func (k Kind) Aliases() []string {
	return append([]string(nil), codes[k]...)
}

// Description is a one-line summary of what the kind does.
func (k Kind) Description() string {
	return descriptions[k]
}
