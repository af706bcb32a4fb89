// Package effects provides the nonlinear waveshaping kernels and the DC
// blocker used by the distortion chain.
//
// Effects in this package:
//   - Cubic / CubicFast: gain-compensated cubic soft clipper.
//   - BridgeRectifier: sine-folded full-wave rectifier shaper.
//   - SlewDistortion: stateful slew-rate limiter with independent rise and
//     fall limits.
//   - DCBlocker: first-order high-pass removing constant offset, with a
//     rate-derived or fixed pole.
//
// All effects are designed for real-time processing with zero-allocation
// hot paths and support both single-sample and buffer-based processing.
package effects
