// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form I processing for a single second-order
// section defined by [Coefficients]. Direct Form I keeps the raw input and
// output taps (x1, x2, y1, y2) as state, which makes coefficient changes
// between samples safe: the stored taps stay meaningful under sample-accurate
// automation, unlike transposed forms whose state mixes coefficients in.
//
// This package provides the processing runtime only. Coefficient design for
// the parametric EQ lives in dsp/eq.
package biquad
