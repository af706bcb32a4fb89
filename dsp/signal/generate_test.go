package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-melt/dsp/core"
)

func TestSine(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))

	out, err := g.Sine(1000, 0.5, 48)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}

	if out[0] != 0 {
		t.Fatalf("sine must start at zero phase, got %g", out[0])
	}

	// Quarter period of 1 kHz at 48 kHz is 12 samples.
	if math.Abs(out[12]-0.5) > 1e-12 {
		t.Fatalf("sine peak = %g, want 0.5", out[12])
	}

	if _, err := g.Sine(1000, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestImpulse(t *testing.T) {
	g := NewGenerator()

	out, err := g.Impulse(8)
	if err != nil {
		t.Fatalf("Impulse() error = %v", err)
	}

	for i, v := range out {
		want := 0.0
		if i == 0 {
			want = 1
		}

		if v != want {
			t.Fatalf("impulse[%d] = %g, want %g", i, v, want)
		}
	}
}

func TestStep(t *testing.T) {
	g := NewGenerator()

	out, err := g.Step(0.25, 16)
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	for i, v := range out {
		if v != 0.25 {
			t.Fatalf("step[%d] = %g, want 0.25", i, v)
		}
	}
}
