package chain

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-melt/dsp/effects"
	"github.com/cwbudde/algo-melt/dsp/eq"
	"github.com/cwbudde/algo-melt/dsp/oversample"
)

const (
	// DefaultMaxBlockSize is the base-rate sub-block length the chain
	// processes at a time. Hosts may hand in longer buffers; the chain
	// splits them.
	DefaultMaxBlockSize = 32

	// DefaultShaperOffset is the fixed asymmetry bias fed to the cubic
	// shaper for even-harmonic coloration.
	DefaultShaperOffset = 0.5

	defaultLowFreq  = 100.0
	defaultMidFreq  = 1000.0
	defaultHighFreq = 8000.0
)

var defaultBandQ = 1 / math.Sqrt2

// Band slots of the chain's equalizer, in processing order.
const (
	bandLow = iota
	bandMid
	bandHigh
	numBands
)

var (
	// ErrChannelCount indicates a buffer set not matching the configured
	// channel count.
	ErrChannelCount = errors.New("chain: buffer channel count mismatch")
	// ErrBufferLength indicates channel buffers of unequal length.
	ErrBufferLength = errors.New("chain: channel buffers must share one length")
	// ErrCurveLength indicates a parameter curve shorter than the block's
	// oversampled sample count.
	ErrCurveLength = errors.New("chain: parameter curve shorter than oversampled block")
)

// LatencyFunc receives the chain's current latency in base-rate samples.
// It is invoked synchronously from the processing call that observes a
// factor change, so hosts can re-align immediately.
type LatencyFunc func(samples int)

type config struct {
	maxBlockSize int
	maxFactor    int
	shaperOffset float64
	latencyFn    LatencyFunc

	lowFreq, midFreq, highFreq float64
	bandQ                      float64
}

// Option mutates construction-time parameters.
type Option func(*config) error

// WithMaxBlockSize sets the internal base-rate sub-block length.
func WithMaxBlockSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("chain max block size must be > 0: %d", n)
		}

		cfg.maxBlockSize = n

		return nil
	}
}

// WithMaxFactor sets the largest honored oversampling factor in
// [0, oversample.MaxFactor].
func WithMaxFactor(factor int) Option {
	return func(cfg *config) error {
		if factor < 0 || factor > oversample.MaxFactor {
			return fmt.Errorf("chain max factor must be in [0, %d]: %d", oversample.MaxFactor, factor)
		}

		cfg.maxFactor = factor

		return nil
	}
}

// WithShaperOffset sets the fixed asymmetry bias in [-1, 1].
func WithShaperOffset(offset float64) Option {
	return func(cfg *config) error {
		if offset < -1 || offset > 1 || math.IsNaN(offset) {
			return fmt.Errorf("chain shaper offset must be in [-1, 1]: %f", offset)
		}

		cfg.shaperOffset = offset

		return nil
	}
}

// WithLatencyFunc registers the host callback for latency changes.
func WithLatencyFunc(fn LatencyFunc) Option {
	return func(cfg *config) error {
		cfg.latencyFn = fn
		return nil
	}
}

// WithBandFrequencies overrides the low/mid/high EQ band frequencies in Hz.
func WithBandFrequencies(low, mid, high float64) Option {
	return func(cfg *config) error {
		if low <= 0 || mid <= 0 || high <= 0 {
			return fmt.Errorf("chain band frequencies must be > 0: %g/%g/%g", low, mid, high)
		}

		cfg.lowFreq, cfg.midFreq, cfg.highFreq = low, mid, high

		return nil
	}
}

// WithBandQ overrides the shared Q of the three EQ bands.
func WithBandQ(q float64) Option {
	return func(cfg *config) error {
		if q <= 0 || math.IsNaN(q) {
			return fmt.Errorf("chain band Q must be > 0: %f", q)
		}

		cfg.bandQ = q

		return nil
	}
}

func defaultChainConfig() config {
	return config{
		maxBlockSize: DefaultMaxBlockSize,
		maxFactor:    oversample.MaxFactor,
		shaperOffset: DefaultShaperOffset,
		lowFreq:      defaultLowFreq,
		midFreq:      defaultMidFreq,
		highFreq:     defaultHighFreq,
		bandQ:        defaultBandQ,
	}
}

// Melter is the distortion chain composition root. One instance owns the
// complete per-channel state for a fixed channel count; all storage is
// allocated at construction and ProcessBlock never allocates.
type Melter struct {
	sampleRate float64
	channels   int

	maxBlockSize int
	maxFactor    int
	shaperOffset float64
	latencyFn    LatencyFunc

	ovs []*oversample.Lanczos3Oversampler
	eqs []*eq.ParametricEQ
	dcs []*effects.DCBlocker

	// curFactor tracks the factor coefficients are derived for; -1 forces
	// a re-derivation (and latency renotification) on the next block.
	curFactor int

	// Transform state for the current channel and sub-block. Set before
	// each oversampler run; the preallocated method value avoids per-call
	// closure allocation.
	curGain, curDrive       []float64
	curLow, curMid, curHigh []float64
	curEQ                   *eq.ParametricEQ
	curDC                   *effects.DCBlocker
	curPre                  bool
	transform               func([]float64)
}

// New creates a Melter for the given base sample rate and channel count.
func New(sampleRate float64, channels int, opts ...Option) (*Melter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("chain sample rate must be > 0: %f", sampleRate)
	}

	if channels <= 0 {
		return nil, fmt.Errorf("chain channel count must be > 0: %d", channels)
	}

	cfg := defaultChainConfig()

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	m := &Melter{
		sampleRate:   sampleRate,
		channels:     channels,
		maxBlockSize: cfg.maxBlockSize,
		maxFactor:    cfg.maxFactor,
		shaperOffset: cfg.shaperOffset,
		latencyFn:    cfg.latencyFn,
		ovs:          make([]*oversample.Lanczos3Oversampler, channels),
		eqs:          make([]*eq.ParametricEQ, channels),
		dcs:          make([]*effects.DCBlocker, channels),
		curFactor:    -1,
	}

	for ch := range channels {
		ov, err := oversample.New(cfg.maxBlockSize, cfg.maxFactor)
		if err != nil {
			return nil, err
		}

		bank := eq.New(sampleRate)
		for _, band := range []struct {
			typ  eq.BandType
			freq float64
		}{
			{eq.LowShelf, cfg.lowFreq},
			{eq.Peak, cfg.midFreq},
			{eq.HighShelf, cfg.highFreq},
		} {
			if err := bank.AddBand(band.typ, band.freq, 0, cfg.bandQ); err != nil {
				return nil, err
			}
		}

		dc, err := effects.NewDCBlocker(sampleRate)
		if err != nil {
			return nil, err
		}

		m.ovs[ch] = ov
		m.eqs[ch] = bank
		m.dcs[ch] = dc
	}

	m.transform = m.applyUpsampled

	return m, nil
}

// Channels returns the configured channel count.
func (m *Melter) Channels() int {
	return m.channels
}

// SampleRate returns the base sample rate.
func (m *Melter) SampleRate() float64 {
	return m.sampleRate
}

// Latency returns the current latency in base-rate samples.
func (m *Melter) Latency() int {
	factor := m.curFactor
	if factor < 0 {
		factor = 0
	}

	return m.ovs[0].Latency(factor)
}

// SetSampleRate stores the new base rate. Coefficients are re-derived on
// the next processed block.
func (m *Melter) SetSampleRate(sampleRate float64) {
	m.sampleRate = sampleRate
	m.curFactor = -1
}

// Reset clears all per-channel state: oversampler history, EQ filter
// memory, and DC-blocker taps. Invoke on stream restart.
func (m *Melter) Reset() {
	for ch := range m.channels {
		m.ovs[ch].Reset()
		m.eqs[ch].Reset()
		m.dcs[ch].Reset()
	}
}

// ProcessBlock runs one audio block in-place through the chain.
//
// buffers holds one equal-length sample buffer per channel. p's curves must
// hold at least len(buffer) << factor values. Channel buffers may be of any
// length; the chain splits them into sub-blocks of the configured maximum
// internally.
func (m *Melter) ProcessBlock(buffers [][]float64, p *BlockParams) error {
	if len(buffers) != m.channels {
		return ErrChannelCount
	}

	blockLen := len(buffers[0])
	for _, buf := range buffers[1:] {
		if len(buf) != blockLen {
			return ErrBufferLength
		}
	}

	factor := p.Factor
	if factor < 0 {
		factor = 0
	} else if factor > m.maxFactor {
		factor = m.maxFactor
	}

	upLen := UpsampledLen(blockLen, factor)
	for _, curve := range [][]float64{p.Gain, p.Drive, p.LowGainDB, p.MidGainDB, p.HighGainDB} {
		if len(curve) < upLen {
			return ErrCurveLength
		}
	}

	if factor != m.curFactor {
		effectiveRate := m.sampleRate * float64(int(1)<<factor)
		for ch := range m.channels {
			m.eqs[ch].SetSampleRate(effectiveRate)
			m.dcs[ch].SetSampleRate(effectiveRate)
		}

		m.curFactor = factor

		// The host must learn the new group delay in the same callback
		// that observes the factor change.
		if m.latencyFn != nil {
			m.latencyFn(m.ovs[0].Latency(factor))
		}
	}

	m.curPre = p.PreEQ

	for off := 0; off < blockLen; off += m.maxBlockSize {
		n := min(m.maxBlockSize, blockLen-off)

		upOff := UpsampledLen(off, factor)
		upN := UpsampledLen(n, factor)

		m.curGain = p.Gain[upOff : upOff+upN]
		m.curDrive = p.Drive[upOff : upOff+upN]
		m.curLow = p.LowGainDB[upOff : upOff+upN]
		m.curMid = p.MidGainDB[upOff : upOff+upN]
		m.curHigh = p.HighGainDB[upOff : upOff+upN]

		for ch := range m.channels {
			m.curEQ = m.eqs[ch]
			m.curDC = m.dcs[ch]
			m.ovs[ch].Process(buffers[ch][off:off+n], factor, m.transform)
		}
	}

	return nil
}

// applyUpsampled is the per-channel transform run at the oversampled rate.
func (m *Melter) applyUpsampled(up []float64) {
	vecmath.MulBlockInPlace(up, m.curGain)

	e, d := m.curEQ, m.curDC

	for i, x := range up {
		// Band gains follow their smoothers at full per-sample resolution;
		// the coefficients are re-derived before the sample is filtered.
		e.SetBandGain(bandLow, m.curLow[i])
		e.SetBandGain(bandMid, m.curMid[i])
		e.SetBandGain(bandHigh, m.curHigh[i])

		if m.curPre {
			x = e.ProcessSample(x)
		}

		x = effects.Cubic(x, m.curDrive[i], m.shaperOffset)
		x = d.ProcessSample(x)

		if !m.curPre {
			x = e.ProcessSample(x)
		}

		up[i] = x
	}
}
