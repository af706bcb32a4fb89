package effects

import (
	"math"
	"math/rand"
	"testing"
)

func TestCubicZeroDrive(t *testing.T) {
	// drive=0 means pregain=postgain=1: the output is the clipped, offset
	// input minus its cubed-third term.
	const offset = 0.5

	for _, x := range []float64{-3, -1, -0.5, 0, 0.2, 0.5, 1, 3} {
		clipped := math.Max(-1, math.Min(1, x+offset))
		want := clipped - clipped*clipped*clipped/3

		if got := Cubic(x, 0, offset); math.Abs(got-want) > 1e-15 {
			t.Fatalf("Cubic(%g, 0, %g) = %g, want %g", x, offset, got, want)
		}
	}
}

func TestCubicBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for range 10000 {
		x := rng.Float64()*20 - 10
		drive := rng.Float64() * 2

		if got := Cubic(x, drive, 0.5); math.Abs(got) > 1 {
			t.Fatalf("Cubic(%g, %g, 0.5) = %g exceeds unit bound", x, drive, got)
		}
	}
}

func TestCubicGainCompensation(t *testing.T) {
	// Negative drive attenuates: postgain 1/pregain restores small-signal
	// level, so a tiny input passes through near-linearly.
	const x = 1e-3

	got := Cubic(x, -1, 0)
	if math.Abs(got-x)/x > 1e-2 {
		t.Fatalf("small-signal compensation off: in=%g out=%g", x, got)
	}

	// Positive drive must not exceed the clip ceiling even for hot input.
	if got := Cubic(1, 2, 0); got > 1 {
		t.Fatalf("hot drive output %g exceeds ceiling", got)
	}
}

func TestCubicOffsetAsymmetry(t *testing.T) {
	// A positive offset shifts the transfer curve: equal positive and
	// negative excursions no longer shape symmetrically.
	pos := Cubic(0.3, 0, 0.5)
	neg := Cubic(-0.3, 0, 0.5)

	if math.Abs(pos+neg) < 1e-9 {
		t.Fatalf("offset produced symmetric output: %g vs %g", pos, neg)
	}
}

func TestCubicBlockMatchesSample(t *testing.T) {
	buf := make([]float64, 128)
	drive := make([]float64, 128)
	want := make([]float64, 128)

	for i := range buf {
		buf[i] = math.Sin(0.1 * float64(i))
		drive[i] = 0.5 + 0.4*math.Sin(0.01*float64(i))
		want[i] = Cubic(buf[i], drive[i], 0.5)
	}

	CubicBlock(buf, drive, 0.5)

	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("block mismatch at %d: %g vs %g", i, buf[i], want[i])
		}
	}
}

func TestBridgeRectifier(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, 1},
		{-math.Pi / 2, 1},
		{math.Pi, 0},
		{10, 0}, // clamped to pi before the sine
	}

	for _, tc := range cases {
		if got := BridgeRectifier(tc.in); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("BridgeRectifier(%g) = %g, want %g", tc.in, got, tc.want)
		}
	}
}
