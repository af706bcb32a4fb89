// Package aliasing quantifies aliased distortion products in the output of
// a nonlinear process.
//
// A memoryless waveshaper driven with a sine at f0 emits energy at the
// harmonics k*f0. Harmonics above Nyquist cannot be represented and fold
// back into the baseband at mirrored frequencies, where they are no longer
// harmonically related to f0. The analyzer separates the measured spectrum
// into the fundamental, true in-band harmonics, and the predicted fold-back
// bins, and reports the alias-to-signal ratio. Comparing the ratio of an
// oversampled render against a baseband render of the same process yields
// the suppression the oversampling provides.
package aliasing

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

const (
	defaultMaxHarmonics = 64
	defaultCaptureBins  = 3
)

// Config holds alias analysis parameters. FundamentalFreq is required; the
// analyzer needs it to predict where harmonics fold.
type Config struct {
	SampleRate      float64
	FFTSize         int
	FundamentalFreq float64
	MaxHarmonics    int
	CaptureBins     int
}

// Result holds the separated spectral levels. Levels are linear magnitudes;
// ratios are relative to the fundamental.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	HarmonicLevel    float64
	AliasLevel       float64
	AliasRatio       float64
	AliasRatio_dB    float64
	AliasFreqs       []float64
}

// Analyze windows the signal, transforms it, and splits the spectrum into
// fundamental, harmonic, and alias energy. Returns a zero Result when the
// configuration cannot produce a usable spectrum.
func Analyze(signal []float64, cfg Config) Result {
	cfg = normalizeConfig(cfg, len(signal))
	if cfg.FFTSize <= 1 || cfg.SampleRate <= 0 || cfg.FundamentalFreq <= 0 {
		return Result{}
	}

	magSquared := powerSpectrum(signal, cfg.FFTSize)
	if magSquared == nil {
		return Result{}
	}

	binCount := len(magSquared)
	maxBin := binCount - 1
	binHz := cfg.SampleRate / float64(cfg.FFTSize)
	nyquist := cfg.SampleRate / 2

	fundamentalBin := int(math.Round(cfg.FundamentalFreq / binHz))
	if fundamentalBin < 1 || fundamentalBin > maxBin {
		return Result{}
	}

	captureBins := cfg.CaptureBins
	if captureBins*2 > fundamentalBin {
		captureBins = fundamentalBin / 2
	}

	fundamentalLevel := bandLevel(magSquared, fundamentalBin, captureBins)

	res := Result{
		FundamentalFreq:  float64(fundamentalBin) * binHz,
		FundamentalLevel: fundamentalLevel,
	}

	for k := 2; k <= cfg.MaxHarmonics; k++ {
		ideal := float64(k) * cfg.FundamentalFreq

		folded, aliased := foldFrequency(ideal, nyquist)

		bin := int(math.Round(folded / binHz))
		if bin < 1 || bin > maxBin {
			continue
		}

		// A folded product can land on top of the fundamental or a true
		// harmonic; those bins are claimed by the stronger classification.
		if !aliased && bin == fundamentalBin {
			continue
		}

		level := bandLevel(magSquared, bin, captureBins)

		if aliased {
			res.AliasLevel += level
			res.AliasFreqs = append(res.AliasFreqs, folded)
		} else {
			res.HarmonicLevel += level
		}
	}

	if fundamentalLevel > 0 {
		res.AliasRatio = res.AliasLevel / fundamentalLevel
	}

	res.AliasRatio_dB = ratioToDB(res.AliasRatio)

	return res
}

// SuppressionDB returns how many dB quieter the aliases of the oversampled
// render are, relative to the baseband render. Positive values mean the
// oversampled path is cleaner.
func SuppressionDB(baseband, oversampled Result) float64 {
	if baseband.AliasRatio <= 0 || oversampled.AliasRatio <= 0 {
		return math.Inf(1)
	}

	return 20 * math.Log10(baseband.AliasRatio/oversampled.AliasRatio)
}

// foldFrequency reflects an ideal product frequency into [0, nyquist] and
// reports whether any folding occurred.
func foldFrequency(freq, nyquist float64) (float64, bool) {
	if freq <= nyquist {
		return freq, false
	}

	period := 2 * nyquist

	f := math.Mod(freq, period)
	if f > nyquist {
		f = period - f
	}

	return f, true
}

// powerSpectrum returns the squared magnitudes of the non-negative bins of
// the Hann-windowed FFT, or nil when the transform fails.
func powerSpectrum(signal []float64, fftSize int) []float64 {
	in := make([]complex128, fftSize)

	n := min(len(signal), fftSize)
	for i := range n {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
		in[i] = complex(signal[i]*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil
	}

	magSquared := make([]float64, fftSize/2+1)
	for i := range magSquared {
		x := out[i]
		magSquared[i] = real(x)*real(x) + imag(x)*imag(x)
	}

	return magSquared
}

// bandLevel sums the magnitudes in a capture window around bin, absorbing
// window leakage.
func bandLevel(magSquared []float64, bin, captureBins int) float64 {
	lo := max(bin-captureBins, 0)

	hi := bin + captureBins
	if hi >= len(magSquared) {
		hi = len(magSquared) - 1
	}

	sum := 0.0
	for i := lo; i <= hi; i++ {
		if magSquared[i] > 0 {
			sum += math.Sqrt(magSquared[i])
		}
	}

	return sum
}

func normalizeConfig(cfg Config, signalLen int) Config {
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = nextPowerOf2(signalLen)
	}

	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = defaultCaptureBins
	}

	return cfg
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
