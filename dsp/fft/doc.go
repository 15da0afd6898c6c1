// Package fft implements the forward and inverse discrete Fourier transform
// used by the filtering and envelope packages, plus the paired frequency and
// time axes.
//
// The forward transform is unnormalized and the inverse is scaled by 1/N, so
// Inverse(Forward(x)) reproduces x within floating-point tolerance. Any
// length N >= 1 is accepted.
//
// Three backends are available. [BackendAuto] uses an algo-fft plan when
// the length is a power of two and falls back to gonum's mixed-radix
// transform otherwise. [BackendGonum] and [BackendGoDSP] force a backend for
// every length; [BackendAlgoFFT] forces algo-fft and rejects lengths that are
// not a power of two.
package fft
