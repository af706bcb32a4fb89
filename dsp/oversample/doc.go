// Package oversample provides band-limited power-of-two oversampling for
// nonlinear per-sample transforms.
//
// A [Lanczos3Oversampler] raises the effective rate by 2^factor using
// cascaded 2x stages, each interpolating and decimating with the Lanczos-3
// windowed-sinc kernel. A caller-supplied transform runs once over the whole
// upsampled region, so the nonlinearity's harmonics land below the raised
// Nyquist and the decimation filter removes them before they can alias into
// the base band.
//
// All scratch storage is allocated by New for the worst case; Process never
// allocates. Each oversampler owns the history for one audio channel.
package oversample
