package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/satprobe/satdsp/dsp/core"
)

// maxKernelSize bounds DefaultKernelSize so the tap count fits an int.
const maxKernelSize = math.MaxInt32

// DefaultKernelSize returns the odd tap count covering +/-3 sigma, saturating
// at math.MaxInt32.
func DefaultKernelSize(sigma float64) int {
	if !core.IsFinite(sigma) || sigma <= 0 {
		return 1
	}
	reach := math.Ceil(3 * sigma)
	if 2*reach+1 >= maxKernelSize {
		return maxKernelSize
	}
	return 2*int(reach) + 1
}

// GaussianKernel returns a Gaussian kernel of size taps normalized to sum 1.
// An even size is rounded up to the next odd value so the kernel has a
// center tap.
func GaussianKernel(sigma float64, size int) ([]float64, error) {
	if err := core.RequirePositive("sigma", sigma); err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: kernel size must be >= 1: %d", core.ErrInvalidParameter, size)
	}
	if size%2 == 0 {
		size++
	}

	half := size / 2
	kernel := make([]float64, size)
	twoSigmaSq := 2 * sigma * sigma
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = math.Exp(-d * d / twoSigmaSq)
	}
	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel, nil
}

// GaussianSmooth convolves signal with a Gaussian kernel. Near the edges only
// in-bounds taps contribute and the result is divided by their summed weight.
// kernelSize <= 0 selects DefaultKernelSize(sigma). Taps farther than
// len(signal)-1 from the center never overlap the signal, so the kernel is
// capped at 2*len(signal)-1 taps without changing the result.
func GaussianSmooth(signal []float64, sigma float64, kernelSize int) ([]float64, error) {
	if err := core.RequireSamples(signal); err != nil {
		return nil, err
	}
	if kernelSize <= 0 {
		kernelSize = DefaultKernelSize(sigma)
	}
	kernelSize = min(kernelSize, 2*len(signal)-1)
	kernel, err := GaussianKernel(sigma, kernelSize)
	if err != nil {
		return nil, err
	}
	return convolveRenormalized(signal, kernel), nil
}

// convolveRenormalized applies a centered odd-length kernel with
// truncate-and-renormalize edges.
func convolveRenormalized(signal, kernel []float64) []float64 {
	n := len(signal)
	half := len(kernel) / 2
	out := make([]float64, n)
	prod := make([]float64, len(kernel))

	for i := range signal {
		lo := max(i-half, 0)
		hi := min(i+half+1, n)
		taps := kernel[lo-(i-half) : hi-(i-half)]

		p := prod[:len(taps)]
		vecmath.MulBlock(p, signal[lo:hi], taps)
		out[i] = floats.Sum(p) / floats.Sum(taps)
	}
	return out
}
