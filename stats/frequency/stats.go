// Package frequency characterises the spectrum of an echo: peak and center
// frequency, centroid, spread and the bandwidth between the points where the
// magnitude falls a given number of dB below the peak.
package frequency

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/dsp/spectrum"
)

// DefaultDropDB is the level below the peak that delimits the bandwidth.
// Transducer data sheets quote the -6 dB bandwidth.
const DefaultDropDB = 6.0

// Stats holds frequency-domain statistics of a spectrum.
type Stats struct {
	PeakFrequency float64 `json:"peak_frequency" yaml:"peak_frequency"`
	PeakMagnitude float64 `json:"peak_magnitude" yaml:"peak_magnitude"`
	Centroid      float64 `json:"centroid" yaml:"centroid"`
	Spread        float64 `json:"spread" yaml:"spread"`
	// LowerFrequency and UpperFrequency are the interpolated crossings of
	// the drop level on either side of the peak.
	LowerFrequency float64 `json:"lower_frequency" yaml:"lower_frequency"`
	UpperFrequency float64 `json:"upper_frequency" yaml:"upper_frequency"`
	// CenterFrequency is the midpoint of the two crossings.
	CenterFrequency   float64 `json:"center_frequency" yaml:"center_frequency"`
	Bandwidth         float64 `json:"bandwidth" yaml:"bandwidth"`
	RelativeBandwidth float64 `json:"relative_bandwidth" yaml:"relative_bandwidth"` // Bandwidth / CenterFrequency
	DropDB            float64 `json:"drop_db" yaml:"drop_db"`
}

// Calculate computes the statistics of the positive-frequency half of s,
// ignoring DC. dropDB must be positive. A spectrum with no energy above DC
// yields zero statistics.
func Calculate(s spectrum.Spectrum, dropDB float64) (Stats, error) {
	if err := core.RequireSamples(s.Magnitude); err != nil {
		return Stats{}, err
	}
	if len(s.Frequency) != len(s.Magnitude) {
		return Stats{}, fmt.Errorf("%w: %d frequencies for %d magnitudes", core.ErrInvalidParameter, len(s.Frequency), len(s.Magnitude))
	}
	if err := core.RequirePositive("drop", dropDB); err != nil {
		return Stats{}, err
	}

	half := s.PositiveHalf()
	freq, mag := half.Frequency, half.Magnitude
	if len(mag) > 0 && freq[0] == 0 {
		freq, mag = freq[1:], mag[1:]
	}

	st := Stats{DropDB: dropDB}
	if len(mag) == 0 || floats.Max(mag) == 0 {
		return st, nil
	}

	peak := floats.MaxIdx(mag)
	st.PeakFrequency, st.PeakMagnitude = freq[peak], mag[peak]
	st.Centroid, st.Spread = centroid(freq, mag)

	threshold := st.PeakMagnitude * math.Pow(10, -dropDB/20)
	st.LowerFrequency = freq[0]
	for i := peak; i >= 1; i-- {
		if mag[i-1] <= threshold && mag[i] > threshold {
			st.LowerFrequency = interpFreq(freq[i-1], freq[i], mag[i-1], mag[i], threshold)
			break
		}
	}
	st.UpperFrequency = freq[len(freq)-1]
	for i := peak; i < len(mag)-1; i++ {
		if mag[i+1] <= threshold && mag[i] > threshold {
			st.UpperFrequency = interpFreq(freq[i], freq[i+1], mag[i], mag[i+1], threshold)
			break
		}
	}

	st.Bandwidth = max(st.UpperFrequency-st.LowerFrequency, 0)
	st.CenterFrequency = (st.LowerFrequency + st.UpperFrequency) / 2
	if st.CenterFrequency > 0 {
		st.RelativeBandwidth = st.Bandwidth / st.CenterFrequency
	}
	return st, nil
}

// centroid returns the magnitude-weighted mean frequency and the weighted
// standard deviation around it.
func centroid(freq, mag []float64) (mean, spread float64) {
	sum := floats.Sum(mag)
	if sum == 0 {
		return 0, 0
	}
	mean = floats.Dot(freq, mag) / sum

	acc := 0.0
	for i, f := range freq {
		d := f - mean
		acc += d * d * mag[i]
	}
	return mean, math.Sqrt(acc / sum)
}

// interpFreq linearly interpolates the frequency where the magnitude crosses
// threshold between two adjacent bins.
func interpFreq(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}
