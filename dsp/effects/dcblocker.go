package effects

import (
	"fmt"
	"math"
)

const (
	// defaultDCCornerHz is the high-pass corner for the rate-derived pole.
	defaultDCCornerHz = 20.0

	// FixedDCPole is the classic rate-independent DC-blocker pole. It is
	// only correct at one reference rate; the rate-derived source keeps the
	// corner at defaultDCCornerHz across sample-rate and oversampling
	// changes and is what the combined chain uses.
	FixedDCPole = 0.995
)

type dcBlockerConfig struct {
	cornerHz  float64
	fixedPole float64
	useFixed  bool
}

// DCBlockerOption mutates construction-time parameters.
type DCBlockerOption func(*dcBlockerConfig) error

// WithDCBlockerCorner sets the high-pass corner frequency in Hz for the
// rate-derived pole source. Default is 20 Hz.
func WithDCBlockerCorner(freqHz float64) DCBlockerOption {
	return func(cfg *dcBlockerConfig) error {
		if freqHz <= 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
			return fmt.Errorf("dc blocker corner must be > 0 Hz: %f", freqHz)
		}

		cfg.cornerHz = freqHz

		return nil
	}
}

// WithDCBlockerFixedPole selects a constant pole instead of the rate-derived
// source. The pole must lie in (0, 1).
func WithDCBlockerFixedPole(pole float64) DCBlockerOption {
	return func(cfg *dcBlockerConfig) error {
		if pole <= 0 || pole >= 1 || math.IsNaN(pole) {
			return fmt.Errorf("dc blocker pole must be in (0, 1): %f", pole)
		}

		cfg.fixedPole = pole
		cfg.useFixed = true

		return nil
	}
}

// DCBlocker is a first-order IIR high-pass removing constant offset:
//
//	y[n] = x[n] - x[n-1] + R*y[n-1]
//
// The pole R comes from a selectable coefficient source chosen at
// construction: rate-derived (default, corner tracks sample-rate changes
// including the oversampled rate) or fixed.
type DCBlocker struct {
	r        float64
	cornerHz float64
	fixed    bool

	x1, y1 float64
}

// NewDCBlocker creates a DC blocker for the given sample rate.
func NewDCBlocker(sampleRate float64, opts ...DCBlockerOption) (*DCBlocker, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dc blocker sample rate must be > 0: %f", sampleRate)
	}

	cfg := dcBlockerConfig{cornerHz: defaultDCCornerHz}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	d := &DCBlocker{
		cornerHz: cfg.cornerHz,
		fixed:    cfg.useFixed,
	}

	if cfg.useFixed {
		d.r = cfg.fixedPole
	} else {
		d.r = ratePole(cfg.cornerHz, sampleRate)
	}

	return d, nil
}

// ratePole derives the pole R = (tau*fs - 1)/(tau*fs + 1) with
// tau = 1/(2*pi*corner).
func ratePole(cornerHz, sampleRate float64) float64 {
	tau := 1 / (2 * math.Pi * cornerHz)
	return (tau*sampleRate - 1) / (tau*sampleRate + 1)
}

// SetSampleRate recomputes the pole for the new rate. For a fixed-pole
// blocker this is a no-op.
func (d *DCBlocker) SetSampleRate(sampleRate float64) {
	if d.fixed {
		return
	}

	d.r = ratePole(d.cornerHz, sampleRate)
}

// Pole returns the current pole R.
func (d *DCBlocker) Pole() float64 {
	return d.r
}

// ProcessSample filters one sample.
func (d *DCBlocker) ProcessSample(x float64) float64 {
	y := x - d.x1 + d.r*d.y1
	d.x1 = x
	d.y1 = y

	return y
}

// ProcessBlock filters a block in-place. Zero-alloc.
func (d *DCBlocker) ProcessBlock(buf []float64) {
	r := d.r
	x1, y1 := d.x1, d.y1

	for i, x := range buf {
		y := x - x1 + r*y1
		x1 = x
		y1 = y
		buf[i] = y
	}

	d.x1, d.y1 = x1, y1
}

// Reset clears the previous input and output samples.
func (d *DCBlocker) Reset() {
	d.x1 = 0
	d.y1 = 0
}
