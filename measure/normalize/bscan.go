package normalize

import (
	"fmt"
	"math"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/measure/gate"
)

// DefaultThresholdRatio is the fraction of the gate peak that maps to 1.
const DefaultThresholdRatio = 0.4

// BScan returns |x|/(absMax*thresholdRatio) clipped to 1 inside the gate and
// 0 elsewhere, absMax being the largest |x| in the gate. The gate is clamped
// to the trace. A gate with absMax == 0, or entirely outside the trace,
// yields all zeros.
func BScan(signal []float64, g gate.Gate, thresholdRatio float64) ([]float64, error) {
	if err := core.RequireSamples(signal); err != nil {
		return nil, err
	}
	if !g.Valid() {
		return nil, fmt.Errorf("%w: start %d > end %d", core.ErrInvalidGate, g.Start, g.End)
	}
	if err := core.RequirePositive("threshold ratio", thresholdRatio); err != nil {
		return nil, err
	}

	out := make([]float64, len(signal))
	start, end, ok := clampWindow(g, len(signal))
	if !ok {
		return out, nil
	}
	absMax := windowAbsMax(signal, start, end)
	if absMax == 0 {
		return out, nil
	}

	threshold := absMax * thresholdRatio
	for i := start; i <= end; i++ {
		out[i] = math.Min(math.Abs(signal[i])/threshold, 1)
	}
	return out, nil
}

// IsDegenerate reports whether BScan would resolve the gate to all zeros
// because it holds no non-zero sample. It returns
// core.ErrDegenerateNormalization in that case so callers can log it.
func IsDegenerate(signal []float64, g gate.Gate) error {
	start, end, ok := clampWindow(g, len(signal))
	if !ok || windowAbsMax(signal, start, end) == 0 {
		return fmt.Errorf("%w: gate %v", core.ErrDegenerateNormalization, g)
	}
	return nil
}

func clampWindow(g gate.Gate, n int) (start, end int, ok bool) {
	start = max(g.Start, 0)
	end = min(g.End, n-1)
	return start, end, start <= end
}

func windowAbsMax(signal []float64, start, end int) float64 {
	m := 0.0
	for i := start; i <= end; i++ {
		m = math.Max(m, math.Abs(signal[i]))
	}
	return m
}
