// Package eq provides a parametric equalizer built from cascaded biquad bands.
//
// Each band is a low-shelf, peak, or high-shelf second-order section whose
// coefficients derive from {frequency, gain, Q, sample rate} using the
// cookbook forms. The derivation intentionally skips bilinear pre-warping:
// corner frequencies skew upward as the band frequency approaches the sample
// rate, which is accepted behavior here, not a defect. Shelf bands pre-scale
// Q by max(A, 1) so boosts widen the shelf transition while cuts keep the
// requested Q.
//
// Parameter validation is the caller's responsibility. Band frequencies at or
// above Nyquist or non-positive Q values may produce unstable coefficients;
// the hot path performs no range checks.
package eq
