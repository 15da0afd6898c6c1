package fft

import (
	"fmt"

	"github.com/satprobe/satdsp/dsp/core"
)

// FrequencyAxis returns the frequency in Hz of each of the n DFT bins:
// i*fs/n for i < n/2 and (i-n)*fs/n otherwise. For odd n the bin (n-1)/2 is
// the highest positive frequency.
func FrequencyAxis(n int, sampleRate float64) ([]float64, error) {
	if err := validateAxis(n, sampleRate); err != nil {
		return nil, err
	}

	df := sampleRate / float64(n)
	out := make([]float64, n)
	for i := range out {
		if 2*i < n {
			out[i] = float64(i) * df
		} else {
			out[i] = float64(i-n) * df
		}
	}
	return out, nil
}

// TimeAxis returns the sample instants i/fs in seconds.
func TimeAxis(n int, sampleRate float64) ([]float64, error) {
	if err := validateAxis(n, sampleRate); err != nil {
		return nil, err
	}

	dt := 1 / sampleRate
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out, nil
}

func validateAxis(n int, sampleRate float64) error {
	if n <= 0 {
		return fmt.Errorf("%w: axis length %d", core.ErrEmptyInput, n)
	}
	return core.RequirePositive("sample rate", sampleRate)
}
