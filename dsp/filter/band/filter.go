package band

import (
	"fmt"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/dsp/fft"
	"github.com/satprobe/satdsp/dsp/filter/hilbert"
	"github.com/satprobe/satdsp/dsp/spectrum"
)

// Filter band-passes signal: forward transform, zero the bins outside b,
// inverse transform. The real part of the result is returned. Options select
// the FFT backend.
func Filter(signal []float64, b Band, opts ...fft.Option) ([]float64, error) {
	tr := fft.New(opts...)
	bins, err := maskedBins(tr, signal, b)
	if err != nil {
		return nil, err
	}
	out, err := tr.Inverse(bins)
	if err != nil {
		return nil, fmt.Errorf("band: inverse transform: %w", err)
	}
	return out, nil
}

// FilterWithEnvelope band-passes signal and returns the envelope of the
// result in one pass: the masked spectrum is made one-sided before the
// inverse transform and the magnitude is returned.
func FilterWithEnvelope(signal []float64, b Band, opts ...fft.Option) ([]float64, error) {
	tr := fft.New(opts...)
	bins, err := maskedBins(tr, signal, b)
	if err != nil {
		return nil, err
	}
	hilbert.MakeOneSided(bins)
	analytic, err := tr.InverseComplex(bins)
	if err != nil {
		return nil, fmt.Errorf("band: inverse transform: %w", err)
	}
	return spectrum.Magnitude(analytic), nil
}

// FilterSpectrum returns the magnitude of the masked spectrum together with
// its frequency axis.
func FilterSpectrum(signal []float64, b Band, sampleRate float64, opts ...fft.Option) (spectrum.Spectrum, error) {
	if err := core.RequirePositive("sample rate", sampleRate); err != nil {
		return spectrum.Spectrum{}, err
	}
	bins, err := maskedBins(fft.New(opts...), signal, b)
	if err != nil {
		return spectrum.Spectrum{}, err
	}
	return spectrum.FromBins(bins, sampleRate)
}

// FilterTimeSeries returns the band-passed signal with the time of each
// sample in seconds.
func FilterTimeSeries(signal []float64, b Band, sampleRate float64, opts ...fft.Option) (values, timeAxis []float64, err error) {
	if err := core.RequirePositive("sample rate", sampleRate); err != nil {
		return nil, nil, err
	}
	values, err = Filter(signal, b, opts...)
	if err != nil {
		return nil, nil, err
	}
	timeAxis, err = fft.TimeAxis(len(values), sampleRate)
	if err != nil {
		return nil, nil, err
	}
	return values, timeAxis, nil
}

func maskedBins(tr *fft.Transformer, signal []float64, b Band) ([]complex128, error) {
	if err := core.RequireSamples(signal); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	bins, err := tr.Forward(signal)
	if err != nil {
		return nil, fmt.Errorf("band: forward transform: %w", err)
	}
	b.Apply(bins)
	return bins, nil
}
