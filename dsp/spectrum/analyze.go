package spectrum

import (
	"fmt"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/dsp/fft"
)

// Spectrum is a magnitude spectrum paired with the frequency of each bin.
// Bins are in transform order, so negative frequencies follow the positive
// half. Phase holds arg(X[k]) in radians and may be nil for spectra built by
// hand.
type Spectrum struct {
	Magnitude []float64
	Frequency []float64
	Phase     []float64
}

// Analyze returns the magnitude spectrum of signal with its frequency axis.
// Options select the FFT backend.
func Analyze(signal []float64, sampleRate float64, opts ...fft.Option) (Spectrum, error) {
	if err := core.RequireSamples(signal); err != nil {
		return Spectrum{}, err
	}
	if err := core.RequirePositive("sample rate", sampleRate); err != nil {
		return Spectrum{}, err
	}

	bins, err := fft.New(opts...).Forward(signal)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: forward transform: %w", err)
	}
	return FromBins(bins, sampleRate)
}

// FromBins builds a Spectrum from already transformed bins.
func FromBins(bins []complex128, sampleRate float64) (Spectrum, error) {
	freq, err := fft.FrequencyAxis(len(bins), sampleRate)
	if err != nil {
		return Spectrum{}, err
	}
	return Spectrum{Magnitude: Magnitude(bins), Frequency: freq, Phase: Phase(bins)}, nil
}

// Len returns the bin count.
func (s Spectrum) Len() int { return len(s.Magnitude) }

// PositiveHalf returns the bins with non-negative frequency, in ascending
// frequency order. The returned slices are copies.
func (s Spectrum) PositiveHalf() Spectrum {
	var out Spectrum
	withPhase := len(s.Phase) == len(s.Frequency)
	for i, f := range s.Frequency {
		if f >= 0 {
			out.Frequency = append(out.Frequency, f)
			out.Magnitude = append(out.Magnitude, s.Magnitude[i])
			if withPhase {
				out.Phase = append(out.Phase, s.Phase[i])
			}
		}
	}
	return out
}

// Peak returns the frequency and magnitude of the strongest bin with positive
// frequency. DC is ignored. The first of equal maxima wins; an empty or
// DC-only spectrum reports (0, 0).
func (s Spectrum) Peak() (freq, mag float64) {
	found := false
	for i, f := range s.Frequency {
		if f <= 0 {
			continue
		}
		if !found || s.Magnitude[i] > mag {
			freq, mag = f, s.Magnitude[i]
			found = true
		}
	}
	return freq, mag
}

// DB returns the magnitudes in decibels (20*log10). Zero bins map to -Inf.
func (s Spectrum) DB() []float64 {
	out := make([]float64, len(s.Magnitude))
	for i, m := range s.Magnitude {
		out[i] = core.LinearToDB(m)
	}
	return out
}
