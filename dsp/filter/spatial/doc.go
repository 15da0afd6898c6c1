// Package spatial provides sample-domain filters for A-scan traces: Gaussian
// smoothing, unsharp masking, zero-offset removal and threshold gating.
//
// None of these use the spectral path. Convolution at the trace edges uses
// only the taps that fall inside the trace and renormalizes by their weight,
// so a constant trace stays constant right up to its ends.
package spatial
