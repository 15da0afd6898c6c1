package normalize

import (
	"errors"
	"testing"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/testutil"
	"github.com/satprobe/satdsp/measure/gate"
)

func TestBScan(t *testing.T) {
	signal := []float64{9, -1, 2, -4, 1, 0.5, 8}

	got, err := BScan(signal, gate.Gate{Start: 1, End: 5}, 0.5)
	if err != nil {
		t.Fatalf("BScan() error = %v", err)
	}
	// absMax=4, threshold=2.
	want := []float64{0, 0.5, 1, 1, 0.5, 0.25, 0}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestBScanBounds(t *testing.T) {
	x := testutil.DeterministicNoise(13, 2, 300)
	g := gate.Gate{Start: 40, End: 220}

	for _, ratio := range []float64{0.1, DefaultThresholdRatio, 1, 3} {
		got, err := BScan(x, g, ratio)
		if err != nil {
			t.Fatalf("ratio=%v: BScan() error = %v", ratio, err)
		}
		for i, v := range got {
			inside := i >= g.Start && i <= g.End
			if !inside && v != 0 {
				t.Fatalf("ratio=%v: out[%d] = %v outside gate", ratio, i, v)
			}
			if inside && (v < 0 || v > 1) {
				t.Fatalf("ratio=%v: out[%d] = %v not in [0,1]", ratio, i, v)
			}
		}
	}
}

func TestBScanClampsGate(t *testing.T) {
	got, err := BScan([]float64{1, -2, 4}, gate.Gate{Start: -5, End: 10}, 1)
	if err != nil {
		t.Fatalf("BScan() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.25, 0.5, 1}, 1e-12)
}

func TestBScanDegenerate(t *testing.T) {
	signal := []float64{3, 0, 0, 0, 3}
	g := gate.Gate{Start: 1, End: 3}

	got, err := BScan(signal, g, DefaultThresholdRatio)
	if err != nil {
		t.Fatalf("BScan() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, make([]float64, 5), 0)
	if err := IsDegenerate(signal, g); !errors.Is(err, core.ErrDegenerateNormalization) {
		t.Fatalf("IsDegenerate() = %v, want ErrDegenerateNormalization", err)
	}
	if err := IsDegenerate(signal, gate.Gate{Start: 0, End: 1}); err != nil {
		t.Fatalf("IsDegenerate(non-zero gate) = %v, want nil", err)
	}

	outside, err := BScan(signal, gate.Gate{Start: 7, End: 9}, DefaultThresholdRatio)
	if err != nil {
		t.Fatalf("BScan(outside) error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, outside, make([]float64, 5), 0)
}

func TestBScanErrors(t *testing.T) {
	if _, err := BScan(nil, gate.Gate{}, 0.4); !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("BScan(nil) error = %v, want ErrEmptyInput", err)
	}
	if _, err := BScan([]float64{1}, gate.Gate{Start: 0, End: 0}, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("BScan(ratio=0) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := BScan([]float64{1}, gate.Gate{Start: 1, End: 0}, 0.4); !errors.Is(err, core.ErrInvalidGate) {
		t.Fatalf("BScan(inverted gate) error = %v, want ErrInvalidGate", err)
	}
}
