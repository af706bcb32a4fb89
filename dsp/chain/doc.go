// Package chain composes the full distortion signal path: per-channel
// oversampling, a three-band parametric EQ, the gain-compensated cubic
// shaper, and a DC blocker.
//
// Per audio block the [Melter] derives the effective rate from the current
// oversampling factor, re-derives EQ and DC-blocker coefficients when that
// rate changed, and drives each channel through
//
//	oversampler -> gain -> [EQ] -> shaper -> DC blocker -> [EQ]
//
// where exactly one of the two EQ positions runs, selected by the block's
// pre/post flag. Parameter curves arrive pre-smoothed from the host, one
// value per oversampled sample; the chain never owns automation. EQ band
// gains are written into the band immediately before each sample, so
// coefficients follow automation at full sample-accurate resolution.
//
// The hot path performs no allocation, no locking, and no validation beyond
// cheap layout checks; it is meant to run on a single audio thread.
package chain
