package effects

import (
	"math"
	"testing"
)

func TestSlewDistortionLimitsRisingEdge(t *testing.T) {
	s := NewSlewDistortion(0.1, 1)

	// Step input: output must ramp at the positive rate.
	want := 0.0
	for i := range 10 {
		want += 0.1

		got := s.ProcessSample(1)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("rising sample %d = %g, want %g", i, got, want)
		}
	}

	// After ten samples the output has reached the step value and holds.
	if got := s.ProcessSample(1); math.Abs(got-1) > 1e-12 {
		t.Fatalf("settled output = %g, want 1", got)
	}
}

func TestSlewDistortionIndependentRates(t *testing.T) {
	s := NewSlewDistortion(1, 0.25)

	if got := s.ProcessSample(1); got != 1 {
		t.Fatalf("fast rise: got %g, want 1", got)
	}

	// Falling edge limited to 0.25 per sample.
	if got := s.ProcessSample(-1); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("slow fall: got %g, want 0.75", got)
	}
}

func TestSlewDistortionNegativeRatesClamped(t *testing.T) {
	s := NewSlewDistortion(-1, -1)

	if got := s.ProcessSample(1); got != 0 {
		t.Fatalf("zero-rate limiter moved: %g", got)
	}

	s.SetPosRate(-5)
	s.SetNegRate(-5)

	if got := s.ProcessSample(-1); got != 0 {
		t.Fatalf("clamped setter still moved: %g", got)
	}
}

func TestSlewDistortionReset(t *testing.T) {
	s := NewSlewDistortion(10, 10)
	s.ProcessSample(0.8)
	s.Reset()

	if got := s.ProcessSample(0); got != 0 {
		t.Fatalf("after Reset: got %g, want 0", got)
	}
}

func TestSlewDistortionBlockMatchesSample(t *testing.T) {
	sBlock := NewSlewDistortion(0.2, 0.05)
	sSample := NewSlewDistortion(0.2, 0.05)

	buf := make([]float64, 200)
	want := make([]float64, 200)
	for i := range buf {
		buf[i] = math.Sin(0.3 * float64(i))
		want[i] = sSample.ProcessSample(buf[i])
	}

	sBlock.ProcessBlock(buf)

	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("block mismatch at %d: %g vs %g", i, buf[i], want[i])
		}
	}
}
