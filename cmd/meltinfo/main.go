// Command meltinfo reports the runtime characteristics of the distortion
// chain: group delay per oversampling factor and measured alias suppression
// for a driven sine.
//
// Usage:
//
//	meltinfo [flags]
//
// Examples:
//
//	meltinfo
//	meltinfo -rate 48000 -drive 2
//	meltinfo -freq 15000 -fftsize 8192
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-melt/dsp/chain"
	"github.com/cwbudde/algo-melt/dsp/core"
	"github.com/cwbudde/algo-melt/dsp/oversample"
	"github.com/cwbudde/algo-melt/dsp/signal"
	"github.com/cwbudde/algo-melt/measure/aliasing"
)

func main() {
	rate := flag.Float64("rate", 44100, "base sample rate in Hz")
	freq := flag.Float64("freq", 0, "test tone frequency in Hz (0 = auto, ~0.37*Nyquist)")
	drive := flag.Float64("drive", 1.5, "shaper drive")
	fftSize := flag.Int("fftsize", 4096, "analysis FFT size (power of two)")
	maxFactor := flag.Int("maxfactor", oversample.MaxFactor, "highest oversampling factor to report")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: meltinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Reports distortion chain latency and alias suppression per oversampling factor.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *rate <= 0 || *fftSize < 64 || *maxFactor < 0 || *maxFactor > oversample.MaxFactor {
		fmt.Fprintf(os.Stderr, "error: invalid flag values\n")
		os.Exit(1)
	}

	// Snap the tone to an FFT bin so the analyzer sees no leakage skirt.
	binHz := *rate / float64(*fftSize)

	f0 := *freq
	if f0 <= 0 {
		f0 = 0.37 * *rate / 2
	}

	bin := int(math.Round(f0 / binHz))
	if bin < 1 || bin >= *fftSize/2 {
		fmt.Fprintf(os.Stderr, "error: tone frequency %g Hz out of range for rate %g Hz\n", f0, *rate)
		os.Exit(1)
	}

	f0 = float64(bin) * binHz

	fmt.Printf("sample rate: %g Hz, test tone: %.1f Hz, drive: %g\n\n", *rate, f0, *drive)

	cfg := aliasing.Config{
		SampleRate:      *rate,
		FFTSize:         *fftSize,
		FundamentalFreq: f0,
	}

	baseband, err := renderResult(*rate, f0, *drive, 0, *fftSize, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Factor\tRate\tLatency [smp]\tAlias/Signal [dB]\tSuppression [dB]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------------\t----------------\n")

	for factor := 0; factor <= *maxFactor; factor++ {
		res := baseband
		if factor > 0 {
			res, err = renderResult(*rate, f0, *drive, factor, *fftSize, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		}

		suppression := aliasing.SuppressionDB(baseband, res)

		fmt.Fprintf(tw, "%dx\t%g\t%d\t%s\t%s\n",
			1<<factor,
			*rate*float64(int(1)<<factor),
			latencyFor(factor),
			formatDB(res.AliasRatio_dB),
			formatDB(suppression),
		)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// renderResult drives a fresh mono chain with a full-scale sine at the
// given factor and analyzes the output.
func renderResult(rate, f0, drive float64, factor, fftSize int, cfg aliasing.Config) (aliasing.Result, error) {
	m, err := chain.New(rate, 1)
	if err != nil {
		return aliasing.Result{}, err
	}

	gen := signal.NewGenerator(core.WithSampleRate(rate))

	buf, err := gen.Sine(f0, 0.9, fftSize)
	if err != nil {
		return aliasing.Result{}, err
	}

	p := chain.FillConstant(fftSize, factor, 1, drive, 0, 0, 0)

	if err := m.ProcessBlock([][]float64{buf}, p); err != nil {
		return aliasing.Result{}, err
	}

	return aliasing.Analyze(buf, cfg), nil
}

func latencyFor(factor int) int {
	o, err := oversample.New(32, oversample.MaxFactor)
	if err != nil {
		panic(err)
	}

	return o.Latency(factor)
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}

	if math.IsInf(v, 1) {
		return "+inf"
	}

	return fmt.Sprintf("%.1f", v)
}
