package eq

import (
	"math"
	"testing"
)

func TestDesignBandPeakClosedForm(t *testing.T) {
	const (
		freq       = 1000.0
		gainDB     = 6.0
		q          = 2.0
		sampleRate = 48000.0
	)

	a := math.Pow(10, gainDB/40)
	omega := 2 * math.Pi * freq / sampleRate
	alpha := math.Sin(omega) / (2 * q)
	a0 := 1 + alpha/a

	want := []float64{
		(1 + alpha*a) / (a0 + normEpsilon),
		-2 * math.Cos(omega) / (a0 + normEpsilon),
		(1 - alpha*a) / (a0 + normEpsilon),
		-2 * math.Cos(omega) / (a0 + normEpsilon),
		(1 - alpha/a) / (a0 + normEpsilon),
	}

	c := DesignBand(Peak, freq, gainDB, q, sampleRate)
	got := []float64{c.B0, c.B1, c.B2, c.A1, c.A2}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Fatalf("coefficient %d = %.18f, want %.18f", i, got[i], want[i])
		}
	}
}

func TestDesignBandShelfQWidening(t *testing.T) {
	const (
		freq       = 200.0
		q          = 1.0
		sampleRate = 48000.0
	)

	// A boost must widen the shelf: the derived coefficients have to match a
	// manual derivation with q*max(A,1), not the requested q.
	boost := DesignBand(LowShelf, freq, 12, q, sampleRate)

	a := math.Pow(10, 12.0/40)
	omega := 2 * math.Pi * freq / sampleRate
	alpha := math.Sin(omega) / (2 * q * a)
	ap1, am1 := a+1, a-1
	b0 := a * (ap1 - am1*math.Cos(omega) + alpha)
	a0 := ap1 + am1*math.Cos(omega) + alpha

	if math.Abs(boost.B0-b0/(a0+normEpsilon)) > 1e-15 {
		t.Fatalf("boost B0 = %.18f, want %.18f", boost.B0, b0/(a0+normEpsilon))
	}

	// A cut leaves Q unchanged: deriving with a widened Q must NOT match.
	cut := DesignBand(LowShelf, freq, -12, q, sampleRate)
	cutWidened := DesignBand(LowShelf, freq, -12, q*a, sampleRate)

	if cut.B0 == cutWidened.B0 {
		t.Fatal("cut unexpectedly widened its Q")
	}
}

func TestDesignBandFiniteOverRange(t *testing.T) {
	rates := []float64{22050, 44100, 48000, 96000, 192000}
	freqs := []float64{10, 20, 100, 500, 1000, 5000, 10000}
	gains := []float64{-24, -6, 0, 6, 24}
	qs := []float64{0.1, 0.5, 1, 2, 10}

	for _, rate := range rates {
		for _, freq := range freqs {
			if freq >= rate/2 {
				continue
			}

			for _, gain := range gains {
				for _, q := range qs {
					for _, typ := range []BandType{LowShelf, Peak, HighShelf} {
						c := DesignBand(typ, freq, gain, q, rate)
						vals := []float64{c.B0, c.B1, c.B2, c.A1, c.A2}

						for i, v := range vals {
							if math.IsNaN(v) || math.IsInf(v, 0) {
								t.Fatalf("%v freq=%g gain=%g q=%g rate=%g: coefficient %d not finite",
									typ, freq, gain, q, rate, i)
							}
						}
					}
				}
			}
		}
	}
}

func TestBandTypeString(t *testing.T) {
	cases := map[BandType]string{
		LowShelf:     "lowshelf",
		Peak:         "peak",
		HighShelf:    "highshelf",
		BandType(99): "unknown",
	}

	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Fatalf("BandType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
