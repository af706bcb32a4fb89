package eq

import (
	"math"

	"github.com/cwbudde/algo-melt/dsp/filter/biquad"
)

// BandType identifies the response shape of an EQ band.
type BandType int

const (
	// LowShelf boosts or cuts all frequencies below the corner frequency.
	LowShelf BandType = iota
	// Peak boosts or cuts a band around the center frequency.
	Peak
	// HighShelf boosts or cuts all frequencies above the corner frequency.
	HighShelf
)

// String returns the band type name.
func (t BandType) String() string {
	switch t {
	case LowShelf:
		return "lowshelf"
	case Peak:
		return "peak"
	case HighShelf:
		return "highshelf"
	default:
		return "unknown"
	}
}

// normEpsilon guards the a0 normalization against division by zero.
const normEpsilon = 1e-6

// DesignBand derives biquad coefficients for one EQ band.
//
// freq is the band frequency in Hz, gainDB the boost/cut in dB, q the
// bandwidth/slope control. A = 10^(gainDB/40) is the square root of the
// linear gain. Shelf types use the asymmetric boost/cut form: (A+1, A-1)
// for boosts, (1/A+1, 1/A-1) for cuts. Omega is computed directly from
// freq/sampleRate without bilinear pre-warping.
//
// The caller must keep freq below Nyquist and q positive; out-of-range
// inputs are not rejected and may yield unstable coefficients.
func DesignBand(bandType BandType, freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	a := math.Pow(10, gainDB/40)

	// Boosted shelves widen their transition; cuts keep the requested Q.
	if bandType == LowShelf || bandType == HighShelf {
		q *= math.Max(a, 1)
	}

	omega := 2 * math.Pi * freq / sampleRate
	sinW := math.Sin(omega)
	cosW := math.Cos(omega)
	alpha := sinW / (2 * q)

	var b0, b1, b2, a0, a1, a2 float64

	switch bandType {
	case LowShelf:
		ap1, am1 := shelfTerms(a)
		ap1Cos := ap1 * cosW
		am1Cos := am1 * cosW

		b0 = a * (ap1 - am1Cos + alpha)
		b1 = 2 * a * (am1 - ap1Cos)
		b2 = a * (ap1 - am1Cos - alpha)
		a0 = ap1 + am1Cos + alpha
		a1 = -2 * (am1 + ap1Cos)
		a2 = ap1 + am1Cos - alpha

	case HighShelf:
		ap1, am1 := shelfTerms(a)
		ap1Cos := ap1 * cosW
		am1Cos := am1 * cosW

		b0 = a * (ap1 + am1Cos + alpha)
		b1 = -2 * a * (am1 + ap1Cos)
		b2 = a * (ap1 + am1Cos - alpha)
		a0 = ap1 - am1Cos + alpha
		a1 = 2 * (am1 - ap1Cos)
		a2 = ap1 - am1Cos - alpha

	default: // Peak
		alphaA := alpha * a
		alphaDivA := alpha / a

		b0 = 1 + alphaA
		b1 = -2 * cosW
		b2 = 1 - alphaA
		a0 = 1 + alphaDivA
		a1 = -2 * cosW
		a2 = 1 - alphaDivA
	}

	norm := 1 / (a0 + normEpsilon)

	return biquad.Coefficients{
		B0: b0 * norm,
		B1: b1 * norm,
		B2: b2 * norm,
		A1: a1 * norm,
		A2: a2 * norm,
	}
}

// shelfTerms returns (A+1, A-1) for boosts and (1/A+1, 1/A-1) for cuts.
func shelfTerms(a float64) (ap1, am1 float64) {
	if a > 1 {
		return a + 1, a - 1
	}

	recip := 1 / a

	return recip + 1, recip - 1
}
