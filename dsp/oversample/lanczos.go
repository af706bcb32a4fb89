package oversample

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// MaxFactor is the largest supported oversampling factor (2^4 = 16x).
const MaxFactor = 4

var (
	// ErrInvalidBlockSize indicates a non-positive maximum block size.
	ErrInvalidBlockSize = errors.New("oversample: max block size must be > 0")
	// ErrInvalidFactor indicates a maximum factor outside 0..MaxFactor.
	ErrInvalidFactor = errors.New("oversample: max factor out of range")
)

const (
	// lanczosA is the kernel support: three side lobes per side.
	lanczosA = 3

	// upTaps is the odd-phase interpolation filter length: the kernel
	// sampled at the six half-integer offsets inside the support.
	upTaps = 2 * lanczosA

	// upDelay is the integer-phase delay of the upsampling filter in input
	// samples (center of the six-tap odd-phase filter, rounded up to the
	// next integer so the even phase is a pure delay).
	upDelay = lanczosA

	// downTaps is the decimation filter length: the kernel stretched by two
	// and sampled at integers, covering t in [-2.5, 2.5].
	downTaps = 4*lanczosA - 1

	// downDelay is the decimation filter delay in high-rate samples,
	// padded past the filter center so one full 2x stage delays exactly
	// 16 high-rate samples. That keeps the cascade group delay integral at
	// the base rate for every factor up to MaxFactor.
	downDelay = 10

	stageDelay = 2*upDelay + downDelay // 16 high-rate samples per stage

	upHistLen   = upTaps - 1
	downHistLen = downTaps + (downDelay - (downTaps-1)/2) - 1
)

// lanczos evaluates the Lanczos-3 kernel at t.
func lanczos(t float64) float64 {
	if t == 0 {
		return 1
	}

	if t <= -lanczosA || t >= lanczosA {
		return 0
	}

	pt := math.Pi * t

	return lanczosA * math.Sin(pt) * math.Sin(pt/lanczosA) / (pt * pt)
}

// upKernel and downKernel are the unit-DC-gain interpolation and decimation
// filters shared by all stages.
var upKernel, downKernel = designKernels()

func designKernels() (up, down []float64) {
	up = make([]float64, upTaps)
	for i := range up {
		up[i] = lanczos(float64(i) - (float64(upTaps)-1)/2)
	}
	normalize(up)

	down = make([]float64, downTaps)
	for i := range down {
		down[i] = 0.5 * lanczos((float64(i)-(float64(downTaps)-1)/2)/2)
	}
	normalize(down)

	return up, down
}

func normalize(kernel []float64) {
	var sum float64
	for _, v := range kernel {
		sum += v
	}

	vecmath.ScaleBlockInPlace(kernel, 1/sum)
}

// stage is one 2x interpolation/decimation step with its own history.
type stage struct {
	upHist   [upHistLen]float64
	downHist [downHistLen]float64

	upExt   []float64 // upHist ++ input scratch
	downExt []float64 // downHist ++ high-rate scratch
	out     []float64 // upsampled output, reused as decimation input
}

func newStage(maxInLen int) *stage {
	return &stage{
		upExt:   make([]float64, upHistLen+maxInLen),
		downExt: make([]float64, downHistLen+2*maxInLen),
		out:     make([]float64, 2*maxInLen),
	}
}

// upsample interpolates src by 2x into the stage's out buffer and returns it.
func (s *stage) upsample(src []float64) []float64 {
	n := len(src)
	ext := s.upExt[:upHistLen+n]
	copy(ext, s.upHist[:])
	copy(ext[upHistLen:], src)

	dst := s.out[:2*n]
	for i := range n {
		// Even phase: pure delay. Odd phase: six-tap Lanczos interpolation
		// halfway between input samples.
		dst[2*i] = ext[i+upHistLen-upDelay]
		dst[2*i+1] = vecmath.DotProduct(upKernel, ext[i:i+upTaps])
	}

	copy(s.upHist[:], ext[n:])

	return dst
}

// decimate low-passes and halves the high-rate src into dst.
func (s *stage) decimate(dst, src []float64) {
	n := len(src)
	ext := s.downExt[:downHistLen+n]
	copy(ext, s.downHist[:])
	copy(ext[downHistLen:], src)

	for i := range n / 2 {
		dst[i] = vecmath.DotProduct(downKernel, ext[2*i:2*i+downTaps])
	}

	copy(s.downHist[:], ext[n:])
}

func (s *stage) reset() {
	s.upHist = [upHistLen]float64{}
	s.downHist = [downHistLen]float64{}
}

// Lanczos3Oversampler runs a per-sample transform at 2^factor times the
// input rate for one audio channel. Interpolation and decimation both use
// the Lanczos-3 windowed-sinc kernel.
type Lanczos3Oversampler struct {
	maxBlockSize int
	maxFactor    int
	stages       []*stage
}

// New creates an oversampler that can process blocks of up to maxBlockSize
// samples at factors up to maxFactor. All scratch storage is allocated here;
// Process performs no allocation.
func New(maxBlockSize, maxFactor int) (*Lanczos3Oversampler, error) {
	if maxBlockSize <= 0 {
		return nil, ErrInvalidBlockSize
	}

	if maxFactor < 0 || maxFactor > MaxFactor {
		return nil, ErrInvalidFactor
	}

	stages := make([]*stage, maxFactor)
	for i := range stages {
		stages[i] = newStage(maxBlockSize << i)
	}

	return &Lanczos3Oversampler{
		maxBlockSize: maxBlockSize,
		maxFactor:    maxFactor,
		stages:       stages,
	}, nil
}

// MaxBlockSize returns the largest block length Process accepts.
func (o *Lanczos3Oversampler) MaxBlockSize() int {
	return o.maxBlockSize
}

// MaxRequestedFactor returns the largest factor Process honors before clamping.
func (o *Lanczos3Oversampler) MaxRequestedFactor() int {
	return o.maxFactor
}

// Latency returns the constant group delay in input samples contributed by
// the interpolation and decimation kernels at the given factor. It is a pure
// function of factor; the host must be renotified whenever the factor
// changes mid-stream, not only at initialization.
func (o *Lanczos3Oversampler) Latency(factor int) int {
	factor = clampFactor(factor, o.maxFactor)

	// Each 2x stage delays stageDelay samples at its doubled rate, which is
	// stageDelay/2 samples at its input rate. Summing the geometric series
	// over the cascade gives an exact integer for every supported factor.
	return stageDelay - stageDelay>>factor
}

// Reset clears all interpolation and decimation history. It must be invoked
// on stream restart or the first block carries nonzero pre-roll energy.
func (o *Lanczos3Oversampler) Reset() {
	for _, s := range o.stages {
		s.reset()
	}
}

// Process upsamples buf to len(buf)*2^factor samples, invokes transform once
// over the whole upsampled region, then decimates back into buf. factor is
// clamped to the constructed maximum. len(buf) must not exceed MaxBlockSize;
// that is the caller's contract, the hot path does not check it.
//
// At factor 0 the transform runs directly on buf.
func (o *Lanczos3Oversampler) Process(buf []float64, factor int, transform func(upsampled []float64)) {
	factor = clampFactor(factor, o.maxFactor)

	if factor == 0 {
		transform(buf)
		return
	}

	up := buf
	for i := range factor {
		up = o.stages[i].upsample(up)
	}

	transform(up)

	for i := factor - 1; i > 0; i-- {
		o.stages[i].decimate(o.stages[i-1].out[:len(up)/2], up)
		up = o.stages[i-1].out[:len(up)/2]
	}

	o.stages[0].decimate(buf, up)
}

func clampFactor(factor, maxFactor int) int {
	if factor < 0 {
		return 0
	}

	if factor > maxFactor {
		return maxFactor
	}

	return factor
}
