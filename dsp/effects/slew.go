package effects

import "math"

// SlewDistortion limits the per-sample delta of the signal to independent
// positive and negative rate limits, accumulating into a running output
// sample. Aggressive limits turn transients into saturation-like ramps.
type SlewDistortion struct {
	posRate float64
	negRate float64
	last    float64
}

// NewSlewDistortion creates a slew limiter with the given maximum rising
// and falling per-sample deltas. Negative rates are clamped to zero.
func NewSlewDistortion(posRate, negRate float64) *SlewDistortion {
	return &SlewDistortion{
		posRate: math.Max(posRate, 0),
		negRate: math.Max(negRate, 0),
	}
}

// ProcessSample advances the limiter by one sample and returns the
// slew-limited output.
func (s *SlewDistortion) ProcessSample(x float64) float64 {
	diff := x - s.last

	rate := s.posRate
	if diff < 0 {
		rate = s.negRate
	}

	step := math.Min(rate, math.Abs(diff))
	if diff < 0 {
		step = -step
	}

	s.last += step

	return s.last
}

// ProcessBlock applies the limiter in-place. Zero-alloc.
func (s *SlewDistortion) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// SetPosRate sets the maximum rising delta per sample, clamped to >= 0.
func (s *SlewDistortion) SetPosRate(rate float64) {
	s.posRate = math.Max(rate, 0)
}

// SetNegRate sets the maximum falling delta per sample, clamped to >= 0.
func (s *SlewDistortion) SetNegRate(rate float64) {
	s.negRate = math.Max(rate, 0)
}

// Reset clears the running output sample.
func (s *SlewDistortion) Reset() {
	s.last = 0
}
