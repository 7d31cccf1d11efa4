package generator

import "math"

// Wrap folds a logical coordinate into the drawable range.
// Values below -1 jump to 1 and values above 1 jump to -1; the truncated
// remainder modulo 1 is then taken (keeping the sign). Consequently both bounds
// and both out-of-range mirrors (1.5 and -1.5) land on 0. NaN maps to 0.
func Wrap(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < -1:
		v = 1
	case v > 1:
		v = -1
	}
	return math.Mod(v, 1)
}
