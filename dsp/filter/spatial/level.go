package spatial

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/satprobe/satdsp/dsp/core"
)

// ZeroOffset subtracts the mean of signal from every sample. With
// useAbsolute the result is rectified.
func ZeroOffset(signal []float64, useAbsolute bool) ([]float64, error) {
	if err := core.RequireSamples(signal); err != nil {
		return nil, err
	}

	mean := stat.Mean(signal, nil)
	out := make([]float64, len(signal))
	for i, x := range signal {
		v := x - mean
		if useAbsolute {
			v = math.Abs(v)
		}
		out[i] = v
	}
	return out, nil
}

// ThresholdFilter keeps samples that exceed threshold and zeroes the rest.
// With useAbsolute the comparison uses |x|; kept samples retain their sign.
func ThresholdFilter(signal []float64, threshold float64, useAbsolute bool) ([]float64, error) {
	if err := core.RequireSamples(signal); err != nil {
		return nil, err
	}
	if math.IsNaN(threshold) {
		return nil, fmt.Errorf("%w: threshold is NaN", core.ErrInvalidParameter)
	}

	out := make([]float64, len(signal))
	for i, x := range signal {
		v := x
		if useAbsolute {
			v = math.Abs(x)
		}
		if v > threshold {
			out[i] = x
		}
	}
	return out, nil
}
