// Package time computes time-domain statistics of an A-scan trace.
//
//nolint:revive
package time

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/measure/gate"
)

// Stats holds time-domain trace statistics.
type Stats struct {
	Length        int     `json:"length" yaml:"length"`
	DC            float64 `json:"dc" yaml:"dc"` // mean
	RMS           float64 `json:"rms" yaml:"rms"`
	Max           float64 `json:"max" yaml:"max"`
	MaxIndex      int     `json:"max_index" yaml:"max_index"`
	Min           float64 `json:"min" yaml:"min"`
	MinIndex      int     `json:"min_index" yaml:"min_index"`
	Peak          float64 `json:"peak" yaml:"peak"` // max(|max|, |min|)
	PeakIndex     int     `json:"peak_index" yaml:"peak_index"`
	CrestFactor   float64 `json:"crest_factor" yaml:"crest_factor"` // peak / RMS
	CrestFactorDB float64 `json:"crest_factor_db" yaml:"crest_factor_db"`
	Energy        float64 `json:"energy" yaml:"energy"` // sum of squares
	ZeroCrossings int     `json:"zero_crossings" yaml:"zero_crossings"`
	Variance      float64 `json:"variance" yaml:"variance"` // population
	Skewness      float64 `json:"skewness" yaml:"skewness"`
	Kurtosis      float64 `json:"kurtosis" yaml:"kurtosis"` // excess
}

// Calculate computes the statistics of signal. Skewness and kurtosis are the
// sample estimates and are 0 for a constant signal. A silent trace has crest
// factor 0.
func Calculate(signal []float64) (Stats, error) {
	if err := core.RequireSamples(signal); err != nil {
		return Stats{}, err
	}

	s := Stats{Length: len(signal)}
	s.DC, s.Variance = stat.PopMeanVariance(signal, nil)
	s.Energy = floats.Dot(signal, signal)
	s.RMS = math.Sqrt(s.Energy / float64(len(signal)))

	s.MaxIndex = floats.MaxIdx(signal)
	s.MinIndex = floats.MinIdx(signal)
	s.Max, s.Min = signal[s.MaxIndex], signal[s.MinIndex]
	s.Peak, s.PeakIndex = s.Max, s.MaxIndex
	if -s.Min > s.Max {
		s.Peak, s.PeakIndex = -s.Min, s.MinIndex
	}

	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
		s.CrestFactorDB = core.LinearToDB(s.CrestFactor)
	}
	if s.Variance > 0 && len(signal) > 2 {
		s.Skewness = stat.Skew(signal, nil)
		s.Kurtosis = stat.ExKurtosis(signal, nil)
	}
	s.ZeroCrossings = ZeroCrossings(signal)
	return s, nil
}

// RMS returns the root mean square of signal, 0 when empty.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(signal, signal) / float64(len(signal)))
}

// ZeroCrossings counts sign changes between consecutive samples. Samples
// that are exactly zero do not count as a crossing on either side.
func ZeroCrossings(signal []float64) int {
	n := 0
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			n++
		}
	}
	return n
}

// SNR returns the ratio in dB of the largest |x| in echo to the RMS of the
// samples in noise. Both gates are clamped to the trace. A silent noise
// window gives +Inf, a silent echo window -Inf, and both silent NaN.
func SNR(signal []float64, echo, noise gate.Gate) (float64, error) {
	if err := core.RequireSamples(signal); err != nil {
		return 0, err
	}
	es, err := window(signal, echo)
	if err != nil {
		return 0, err
	}
	ns, err := window(signal, noise)
	if err != nil {
		return 0, err
	}

	peak := math.Max(math.Abs(floats.Max(es)), math.Abs(floats.Min(es)))
	rms := RMS(ns)
	if rms == 0 {
		if peak == 0 {
			return math.NaN(), nil
		}
		return math.Inf(1), nil
	}
	return core.LinearToDB(peak / rms), nil
}

func window(signal []float64, g gate.Gate) ([]float64, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidGate, g)
	}
	start, end := max(g.Start, 0), min(g.End, len(signal)-1)
	if start > end {
		return nil, fmt.Errorf("%w: %v lies outside %d samples", core.ErrInvalidGate, g, len(signal))
	}
	return signal[start : end+1], nil
}
