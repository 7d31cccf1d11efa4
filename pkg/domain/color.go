package domain

import "math"

// Color is an RGB triple with channels in [0,1].
type Color struct {
	R, G, B float64
}

var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
)

// Abs returns the color with every channel made non-negative and clamped to [0,1].
// NaN channels become 0.
func (c Color) Abs() Color {
	return Color{R: unit(math.Abs(c.R)), G: unit(math.Abs(c.G)), B: unit(math.Abs(c.B))}
}

func unit(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Clamp returns the color with every channel clamped to [0,1].
func (c Color) Clamp() Color {
	return Color{R: unit(c.R), G: unit(c.G), B: unit(c.B)}
}
