// Package spectrum provides spectrum-domain helpers on top of package fft.
//
// Bin-level functions (Magnitude, Phase) operate on complex bins from any
// backend. Analyze pairs the magnitude and phase of each bin with its
// frequency axis, which is what the inspection front end plots for the raw
// trace.
package spectrum
