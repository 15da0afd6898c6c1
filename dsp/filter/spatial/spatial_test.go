package spatial

import (
	"errors"
	"math"
	"testing"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/testutil"
)

func TestDefaultKernelSize(t *testing.T) {
	tests := []struct {
		sigma float64
		want  int
	}{
		{sigma: 1, want: 7},
		{sigma: 2, want: 13},
		{sigma: 0.5, want: 5},
		{sigma: 0.1, want: 3},
		{sigma: 0, want: 1},
		{sigma: 1e300, want: math.MaxInt32},
	}
	for _, tt := range tests {
		if got := DefaultKernelSize(tt.sigma); got != tt.want {
			t.Fatalf("DefaultKernelSize(%v) = %d, want %d", tt.sigma, got, tt.want)
		}
	}
}

func TestGaussianKernel(t *testing.T) {
	k, err := GaussianKernel(1, 4)
	if err != nil {
		t.Fatalf("GaussianKernel() error = %v", err)
	}
	if len(k) != 5 {
		t.Fatalf("len = %d, want 5 (even size forced odd)", len(k))
	}
	sum := 0.0
	for _, v := range k {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("kernel sum = %v, want 1", sum)
	}
	for i := 0; i < len(k)/2; i++ {
		if math.Abs(k[i]-k[len(k)-1-i]) > 1e-15 {
			t.Fatalf("kernel not symmetric: %v", k)
		}
	}
	if k[2] <= k[1] || k[1] <= k[0] {
		t.Fatalf("kernel not peaked at center: %v", k)
	}
}

func TestGaussianSmoothSingleTapIsIdentity(t *testing.T) {
	x := testutil.DeterministicNoise(2, 4, 37)
	for _, sigma := range []float64{0.3, 1, 10} {
		got, err := GaussianSmooth(x, sigma, 1)
		if err != nil {
			t.Fatalf("sigma=%v: GaussianSmooth() error = %v", sigma, err)
		}
		testutil.RequireSliceNearlyEqual(t, got, x, 1e-12)
	}
}

func TestGaussianSmoothConstantPreserved(t *testing.T) {
	x := testutil.DC(3.5, 20)
	got, err := GaussianSmooth(x, 2, 0)
	if err != nil {
		t.Fatalf("GaussianSmooth() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, x, 1e-12)
}

func TestGaussianSmoothEdgeRenormalization(t *testing.T) {
	x := []float64{1, 0, 0, 0, 0}
	k, err := GaussianKernel(1, 3)
	if err != nil {
		t.Fatalf("GaussianKernel() error = %v", err)
	}
	got, err := GaussianSmooth(x, 1, 3)
	if err != nil {
		t.Fatalf("GaussianSmooth() error = %v", err)
	}
	// Sample 0 sees taps k[1] (itself) and k[2] (sample 1).
	want0 := k[1] / (k[1] + k[2])
	if math.Abs(got[0]-want0) > 1e-12 {
		t.Fatalf("got[0] = %v, want %v", got[0], want0)
	}
	if math.Abs(got[1]-k[0]) > 1e-12 {
		t.Fatalf("got[1] = %v, want %v", got[1], k[0])
	}
	if got[3] != 0 || got[4] != 0 {
		t.Fatalf("impulse spread too far: %v", got)
	}
}

func TestGaussianSmoothKernelCappedToSignal(t *testing.T) {
	x := []float64{4, -1, 2, 0.5, 3}

	full, err := GaussianSmooth(x, 2, DefaultKernelSize(2))
	if err != nil {
		t.Fatalf("GaussianSmooth(default size) error = %v", err)
	}
	capped, err := GaussianSmooth(x, 2, 2*len(x)-1)
	if err != nil {
		t.Fatalf("GaussianSmooth(capped size) error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, full, capped, 1e-12)

	// A huge sigma flattens the kernel, so every output is the signal mean.
	for _, sigma := range []float64{1e12, 1e300} {
		got, err := GaussianSmooth(x, sigma, 0)
		if err != nil {
			t.Fatalf("sigma=%g: GaussianSmooth() error = %v", sigma, err)
		}
		testutil.RequireSliceNearlyEqual(t, got, []float64{1.7, 1.7, 1.7, 1.7, 1.7}, 1e-9)
	}
}

func TestGaussianSmoothErrors(t *testing.T) {
	if _, err := GaussianSmooth(nil, 1, 3); !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("GaussianSmooth(nil) error = %v, want ErrEmptyInput", err)
	}
	if _, err := GaussianSmooth([]float64{1}, 0, 3); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("GaussianSmooth(sigma=0) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := GaussianKernel(1, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("GaussianKernel(size=0) error = %v, want ErrInvalidParameter", err)
	}
}

func TestUnsharpMask(t *testing.T) {
	x := []float64{0, 0, 0, 10, 0, 0, 0}

	same, err := UnsharpMask(x, 1, 1, 0)
	if err != nil {
		t.Fatalf("UnsharpMask() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, same, x, 1e-12)

	sharp, err := UnsharpMask(x, 2, 1, 0)
	if err != nil {
		t.Fatalf("UnsharpMask() error = %v", err)
	}
	if sharp[3] <= x[3] {
		t.Fatalf("peak not boosted: %v", sharp)
	}
	if sharp[2] >= 0 {
		t.Fatalf("neighbor not undershot: %v", sharp)
	}

	gated, err := UnsharpMask(x, 2, 1, 100)
	if err != nil {
		t.Fatalf("UnsharpMask() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, gated, x, 0)

	if _, err := UnsharpMask(x, 2, 1, -1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("UnsharpMask(threshold=-1) error = %v, want ErrInvalidParameter", err)
	}
}

func TestZeroOffset(t *testing.T) {
	got, err := ZeroOffset([]float64{1, 2, 3, 6}, false)
	if err != nil {
		t.Fatalf("ZeroOffset() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{-2, -1, 0, 3}, 1e-12)

	abs, err := ZeroOffset([]float64{1, 2, 3, 6}, true)
	if err != nil {
		t.Fatalf("ZeroOffset() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, abs, []float64{2, 1, 0, 3}, 1e-12)
}

func TestThresholdFilter(t *testing.T) {
	x := []float64{-3, 0.5, 2, -0.2, 1}

	got, err := ThresholdFilter(x, 1, true)
	if err != nil {
		t.Fatalf("ThresholdFilter() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{-3, 0, 2, 0, 0}, 0)

	got, err = ThresholdFilter(x, 0, false)
	if err != nil {
		t.Fatalf("ThresholdFilter() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 0.5, 2, 0, 1}, 0)
}

func TestThresholdFilterExtremes(t *testing.T) {
	x := testutil.DeterministicNoise(17, 3, 50)
	maxAbs, minVal := 0.0, math.Inf(1)
	for _, v := range x {
		maxAbs = math.Max(maxAbs, math.Abs(v))
		minVal = math.Min(minVal, v)
	}

	zeros, err := ThresholdFilter(x, maxAbs+1, true)
	if err != nil {
		t.Fatalf("ThresholdFilter() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, zeros, make([]float64, len(x)), 0)

	all, err := ThresholdFilter(x, minVal-1, false)
	if err != nil {
		t.Fatalf("ThresholdFilter() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, all, x, 0)
}
