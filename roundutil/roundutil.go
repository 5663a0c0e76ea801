// Package roundutil centralizes the decimal rounding rule this simulation's
// bit-identity contract depends on: round-half-to-even at a fixed number of
// fractional digits. The dialogue kernel rounds to 4 digits before
// normalizing; the final statistics round to 3 digits. Both call the same
// function so the rounding rule itself never drifts between the two call
// sites.
package roundutil

import "math"

// HalfEven rounds x to the given number of fractional decimal digits using
// round-half-to-even (banker's rounding), via math.RoundToEven scaled to
// the requested precision.
func HalfEven(x float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(x*scale) / scale
}
