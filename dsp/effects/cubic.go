package effects

import (
	"math"

	"github.com/cwbudde/algo-melt/dsp/core"
)

// Cubic applies a gain-compensated cubic soft clipper to one sample.
//
// The input is scaled by pregain = 10^(2*drive), shifted by offset, clipped
// to [-1, 1], and shaped by y - y^3/3. The postgain max(1, 1/pregain)
// compensates the output level so raising drive does not also raise loudness
// past the clip ceiling. A nonzero offset biases the transfer curve
// asymmetrically, producing even-harmonic coloration.
//
// Stateless; safe to call at any rate. For drive >= 0 the output magnitude
// never exceeds 1 (the shaped clip value stays within +-2/3 before
// compensation, and compensation only applies below unity pregain).
//
// Builds with the fastmath tag replace the exact pregain pow10 with a fast
// exp approximation.
func Cubic(x, drive, offset float64) float64 {
	pregain := mathPower10(2 * drive)

	y := core.Clamp(x*pregain+offset, -1, 1)
	y -= y * y * y / 3

	postgain := math.Max(1, 1/pregain)

	return y * postgain
}

// CubicBlock applies Cubic in-place with per-sample drive taken from the
// curve. buf and drive must have the same length. Zero-alloc.
func CubicBlock(buf, drive []float64, offset float64) {
	_ = drive[len(buf)-1] // bounds check hint
	for i, x := range buf {
		buf[i] = Cubic(x, drive[i], offset)
	}
}

// BridgeRectifier folds the input through a sine full-wave rectifier:
// sin(min(|x|, pi)). Stateless.
func BridgeRectifier(x float64) float64 {
	return math.Sin(math.Min(math.Abs(x), math.Pi))
}
