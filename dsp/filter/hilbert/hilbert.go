package hilbert

import (
	"fmt"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/dsp/fft"
	"github.com/satprobe/satdsp/dsp/spectrum"
)

// MakeOneSided converts a full spectrum to the spectrum of the analytic
// signal in place. Bins [1, N/2) are doubled and bins (N/2, N) are zeroed;
// DC and, for even N, the Nyquist bin are left unchanged.
func MakeOneSided(bins []complex128) {
	n := len(bins)
	half := n / 2
	for i := 1; i < half; i++ {
		bins[i] *= 2
	}
	for i := half + 1; i < n; i++ {
		bins[i] = 0
	}
}

// AnalyticSignal returns x + j*H{x} for a real signal. Options select the
// FFT backend.
func AnalyticSignal(signal []float64, opts ...fft.Option) ([]complex128, error) {
	if err := core.RequireSamples(signal); err != nil {
		return nil, err
	}

	tr := fft.New(opts...)
	bins, err := tr.Forward(signal)
	if err != nil {
		return nil, fmt.Errorf("hilbert: forward transform: %w", err)
	}
	MakeOneSided(bins)
	out, err := tr.InverseComplex(bins)
	if err != nil {
		return nil, fmt.Errorf("hilbert: inverse transform: %w", err)
	}
	return out, nil
}

// Envelope returns the magnitude of the analytic signal. Every sample is
// non-negative.
func Envelope(signal []float64, opts ...fft.Option) ([]float64, error) {
	return Transform(signal, true, opts...)
}

// Quadrature returns the imaginary part of the analytic signal, the input
// shifted by 90 degrees.
func Quadrature(signal []float64, opts ...fft.Option) ([]float64, error) {
	return Transform(signal, false, opts...)
}

// Transform returns the envelope when returnEnvelope is set and the
// quadrature component otherwise.
func Transform(signal []float64, returnEnvelope bool, opts ...fft.Option) ([]float64, error) {
	analytic, err := AnalyticSignal(signal, opts...)
	if err != nil {
		return nil, err
	}
	if returnEnvelope {
		return spectrum.Magnitude(analytic), nil
	}

	out := make([]float64, len(analytic))
	for i, c := range analytic {
		out[i] = imag(c)
	}
	return out, nil
}
