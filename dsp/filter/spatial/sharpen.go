package spatial

import (
	"fmt"
	"math"

	"github.com/satprobe/satdsp/dsp/core"
)

// UnsharpMask sharpens signal against a Gaussian blur of itself. For each
// sample, diff = x - blurred; when |diff| > threshold the output is
// x + diff*(amount-1), otherwise x. The blur uses DefaultKernelSize(sigma).
func UnsharpMask(signal []float64, amount, sigma, threshold float64) ([]float64, error) {
	if !core.IsFinite(amount) {
		return nil, fmt.Errorf("%w: amount must be finite: %v", core.ErrInvalidParameter, amount)
	}
	if err := core.RequireNonNegative("threshold", threshold); err != nil {
		return nil, err
	}
	blurred, err := GaussianSmooth(signal, sigma, DefaultKernelSize(sigma))
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(signal))
	for i, x := range signal {
		diff := x - blurred[i]
		if math.Abs(diff) > threshold {
			out[i] = x + diff*(amount-1)
		} else {
			out[i] = x
		}
	}
	return out, nil
}
