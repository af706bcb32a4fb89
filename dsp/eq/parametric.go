package eq

import (
	"errors"

	"github.com/cwbudde/algo-melt/dsp/filter/biquad"
)

// MaxBands is the maximum number of bands a ParametricEQ can hold.
const MaxBands = 16

var (
	// ErrTooManyBands is returned when adding a band past MaxBands.
	ErrTooManyBands = errors.New("eq: maximum number of bands reached")
	// ErrBandIndex is returned for a band index outside the current bank.
	ErrBandIndex = errors.New("eq: band index out of range")
)

// Band is one EQ band: a type tag, its parameters, and the biquad section
// they derive into. Bands are owned by their slot in a ParametricEQ.
type Band struct {
	bandType BandType
	freq     float64
	gainDB   float64
	q        float64

	sec biquad.Section
}

// Type returns the band's response shape.
func (b *Band) Type() BandType { return b.bandType }

// Freq returns the band frequency in Hz.
func (b *Band) Freq() float64 { return b.freq }

// GainDB returns the band gain in dB.
func (b *Band) GainDB() float64 { return b.gainDB }

// Q returns the band's requested Q (before any shelf widening).
func (b *Band) Q() float64 { return b.q }

func (b *Band) set(freq, gainDB, q, sampleRate float64) {
	b.freq = freq
	b.gainDB = gainDB
	b.q = q
	b.sec.Coefficients = DesignBand(b.bandType, freq, gainDB, q, sampleRate)
}

// ParametricEQ is an ordered bank of up to MaxBands cascaded EQ bands.
// Slot order is processing order.
type ParametricEQ struct {
	sampleRate float64
	bands      []Band
}

// New creates an empty equalizer for the given sample rate.
// The band storage is allocated up front; AddBand never reallocates.
func New(sampleRate float64) *ParametricEQ {
	return &ParametricEQ{
		sampleRate: sampleRate,
		bands:      make([]Band, 0, MaxBands),
	}
}

// SampleRate returns the rate coefficients are currently derived for.
func (p *ParametricEQ) SampleRate() float64 {
	return p.sampleRate
}

// SetSampleRate stores the new rate and re-derives every band's
// coefficients from its last parameters. Filter state is kept.
func (p *ParametricEQ) SetSampleRate(sampleRate float64) {
	p.sampleRate = sampleRate
	for i := range p.bands {
		b := &p.bands[i]
		b.set(b.freq, b.gainDB, b.q, sampleRate)
	}
}

// NumBands returns the number of bands currently in the bank.
func (p *ParametricEQ) NumBands() int {
	return len(p.bands)
}

// AddBand appends a band to the end of the cascade.
// Returns ErrTooManyBands once MaxBands bands exist.
func (p *ParametricEQ) AddBand(bandType BandType, freq, gainDB, q float64) error {
	if len(p.bands) >= MaxBands {
		return ErrTooManyBands
	}

	p.bands = append(p.bands, Band{bandType: bandType})
	p.bands[len(p.bands)-1].set(freq, gainDB, q, p.sampleRate)

	return nil
}

// RemoveBand removes the band at index, shifting later bands down.
// Returns ErrBandIndex for index >= NumBands().
func (p *ParametricEQ) RemoveBand(index int) error {
	if index < 0 || index >= len(p.bands) {
		return ErrBandIndex
	}

	p.bands = append(p.bands[:index], p.bands[index+1:]...)

	return nil
}

// SetBandParams re-derives the coefficients of the band at index from new
// parameters. Returns ErrBandIndex for index >= NumBands().
func (p *ParametricEQ) SetBandParams(index int, freq, gainDB, q float64) error {
	if index < 0 || index >= len(p.bands) {
		return ErrBandIndex
	}

	p.bands[index].set(freq, gainDB, q, p.sampleRate)

	return nil
}

// SetBandGain is the hot-path variant of SetBandParams for gain automation:
// it re-derives only the band at index with a new gain, keeping frequency
// and Q. Out-of-range indices are ignored so per-sample automation never
// branches on an error.
func (p *ParametricEQ) SetBandGain(index int, gainDB float64) {
	if index < 0 || index >= len(p.bands) {
		return
	}

	b := &p.bands[index]
	if b.gainDB == gainDB {
		return
	}

	b.set(b.freq, gainDB, b.q, p.sampleRate)
}

// Band returns the band at index, or nil if index is out of range.
// The pointer stays valid until RemoveBand shifts the bank.
func (p *ParametricEQ) Band(index int) *Band {
	if index < 0 || index >= len(p.bands) {
		return nil
	}

	return &p.bands[index]
}

// ProcessSample cascades one sample through all bands in insertion order.
// With zero bands the input is returned unchanged.
func (p *ParametricEQ) ProcessSample(x float64) float64 {
	for i := range p.bands {
		x = p.bands[i].sec.ProcessSample(x)
	}

	return x
}

// ProcessBlock cascades a block in-place through all bands. Zero-alloc.
func (p *ParametricEQ) ProcessBlock(buf []float64) {
	for i := range p.bands {
		p.bands[i].sec.ProcessBlock(buf)
	}
}

// Reset clears every band's filter state. Coefficients are kept.
func (p *ParametricEQ) Reset() {
	for i := range p.bands {
		p.bands[i].sec.Reset()
	}
}
