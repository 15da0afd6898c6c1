package fft

import (
	"errors"
	"testing"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/testutil"
)

func TestFrequencyAxis(t *testing.T) {
	tests := []struct {
		name string
		n    int
		fs   float64
		want []float64
	}{
		{name: "even", n: 4, fs: 4, want: []float64{0, 1, -2, -1}},
		{name: "odd", n: 5, fs: 10, want: []float64{0, 2, 4, -4, -2}},
		{name: "three", n: 3, fs: 3, want: []float64{0, 1, -1}},
		{name: "single", n: 1, fs: 8, want: []float64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FrequencyAxis(tt.n, tt.fs)
			if err != nil {
				t.Fatalf("FrequencyAxis() error = %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-12)
		})
	}
}

func TestFrequencyAxisPairsConjugateBins(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 9, 21} {
		axis, err := FrequencyAxis(n, float64(n))
		if err != nil {
			t.Fatalf("n=%d: FrequencyAxis() error = %v", n, err)
		}
		for i := 1; i < n; i++ {
			if 2*i == n {
				continue
			}
			if axis[i] != -axis[n-i] {
				t.Fatalf("n=%d: bin %d = %v, bin %d = %v, want opposite signs", n, i, axis[i], n-i, axis[n-i])
			}
		}
	}
}

func TestTimeAxis(t *testing.T) {
	got, err := TimeAxis(3, 2)
	if err != nil {
		t.Fatalf("TimeAxis() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 0.5, 1}, 1e-12)
}

func TestAxisErrors(t *testing.T) {
	if _, err := FrequencyAxis(0, 1); !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("FrequencyAxis(0) error = %v, want ErrEmptyInput", err)
	}
	if _, err := FrequencyAxis(4, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("FrequencyAxis(fs=0) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := TimeAxis(4, -1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("TimeAxis(fs=-1) error = %v, want ErrInvalidParameter", err)
	}
}
