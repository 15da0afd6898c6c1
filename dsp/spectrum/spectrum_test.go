package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/testutil"
)

func TestMagnitudePhase(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}

	if math.Abs(mag[0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0]=%f want=5", mag[0])
	}

	phase := Phase(bins)
	if math.Abs(phase[0]-math.Atan2(4, 3)) > 1e-12 {
		t.Fatalf("Phase[0]=%f mismatch", phase[0])
	}
}

func TestEmptyBins(t *testing.T) {
	if Magnitude(nil) != nil || Phase(nil) != nil || UnwrapPhase(nil) != nil {
		t.Fatalf("expected nil results for empty input")
	}
}

func TestUnwrapPhase(t *testing.T) {
	in := []float64{2.8, -2.7, -2.6}

	out := UnwrapPhase(in)
	if len(out) != len(in) {
		t.Fatalf("unwrap length mismatch")
	}

	if out[1] <= out[0] {
		t.Fatalf("expected increasing unwrapped phase: %v", out)
	}

	if math.Abs((out[1]-out[0])-(2*math.Pi-5.5)) > 1e-12 {
		t.Fatalf("unexpected unwrap delta: %f", out[1]-out[0])
	}
}

func TestAnalyzePhase(t *testing.T) {
	// cos shifted by a quarter period is sin, whose bin 1 is -N/2 * i.
	x := []float64{0, 1, 0, -1}
	s, err := Analyze(x, 4)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(s.Phase) != 4 {
		t.Fatalf("len(Phase) = %d, want 4", len(s.Phase))
	}
	if math.Abs(s.Phase[1]+math.Pi/2) > 1e-12 {
		t.Fatalf("Phase[1] = %v, want -pi/2", s.Phase[1])
	}
	if math.Abs(s.Phase[3]-math.Pi/2) > 1e-12 {
		t.Fatalf("Phase[3] = %v, want pi/2", s.Phase[3])
	}

	half := s.PositiveHalf()
	if len(half.Phase) != half.Len() {
		t.Fatalf("PositiveHalf kept %d phases for %d bins", len(half.Phase), half.Len())
	}
	if math.Abs(half.Phase[1]+math.Pi/2) > 1e-12 {
		t.Fatalf("PositiveHalf().Phase[1] = %v, want -pi/2", half.Phase[1])
	}
}

func TestAnalyzeDC(t *testing.T) {
	s, err := Analyze([]float64{1, 1, 1, 1}, 4)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, s.Magnitude, []float64{4, 0, 0, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, s.Frequency, []float64{0, 1, -2, -1}, 1e-12)
}

func TestAnalyzePeakOfTone(t *testing.T) {
	const (
		fs     = 1000.0
		n      = 200
		toneHz = 50.0
	)
	x := testutil.DeterministicSine(toneHz, fs, 1, n)

	s, err := Analyze(x, fs)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	freq, mag := s.Peak()
	if math.Abs(freq-toneHz) > 1e-9 {
		t.Fatalf("Peak() freq = %v, want %v", freq, toneHz)
	}
	// A bin-aligned unit sine puts N/2 into each of its two bins.
	if math.Abs(mag-n/2) > 1e-6 {
		t.Fatalf("Peak() mag = %v, want %v", mag, n/2)
	}
}

func TestPositiveHalf(t *testing.T) {
	s := Spectrum{
		Magnitude: []float64{4, 3, 2, 1, 0},
		Frequency: []float64{0, 1, 2, -2, -1},
	}
	half := s.PositiveHalf()
	testutil.RequireSliceNearlyEqual(t, half.Frequency, []float64{0, 1, 2}, 0)
	testutil.RequireSliceNearlyEqual(t, half.Magnitude, []float64{4, 3, 2}, 0)
	if half.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", half.Len())
	}
}

func TestAnalyzeOddLengthKeepsTopPositiveBin(t *testing.T) {
	const n = 5
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Cos(2 * math.Pi * 2 * float64(i) / n)
	}

	s, err := Analyze(x, n)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := s.PositiveHalf().Len(); got != 3 {
		t.Fatalf("PositiveHalf().Len() = %d, want 3", got)
	}
	freq, mag := s.Peak()
	if freq != 2 || math.Abs(mag-2.5) > 1e-9 {
		t.Fatalf("Peak() = (%v, %v), want (2, 2.5)", freq, mag)
	}
}

func TestPeakDCOnly(t *testing.T) {
	s := Spectrum{Magnitude: []float64{4}, Frequency: []float64{0}}
	if f, m := s.Peak(); f != 0 || m != 0 {
		t.Fatalf("Peak() = (%v, %v), want (0, 0)", f, m)
	}
}

func TestDB(t *testing.T) {
	s := Spectrum{Magnitude: []float64{1, 10, 0}, Frequency: []float64{0, 1, -1}}
	db := s.DB()
	if db[0] != 0 || math.Abs(db[1]-20) > 1e-12 || !math.IsInf(db[2], -1) {
		t.Fatalf("DB() = %v", db)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze(nil, 1); !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("Analyze(nil) error = %v, want ErrEmptyInput", err)
	}
	if _, err := Analyze([]float64{1}, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("Analyze(fs=0) error = %v, want ErrInvalidParameter", err)
	}
}
