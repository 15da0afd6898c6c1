package gate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/satprobe/satdsp/dsp/core"
)

const (
	// NoPeak is the Result index of a window with no in-bounds sample.
	NoPeak = -1

	// DefaultFirstPeakRatio is the leading fraction of a trace searched for
	// the front-surface echo.
	DefaultFirstPeakRatio = 0.4
)

// SentinelValue is the Result value reported together with NoPeak.
const SentinelValue = -math.MaxFloat64

// Gate is a closed index window [Start, End].
type Gate struct {
	Start int `json:"start" yaml:"start" mapstructure:"start"`
	End   int `json:"end" yaml:"end" mapstructure:"end"`
}

// Shift returns the gate moved by offset samples.
func (g Gate) Shift(offset int) Gate {
	return Gate{Start: g.Start + offset, End: g.End + offset}
}

// Width returns End - Start.
func (g Gate) Width() int {
	return g.End - g.Start
}

// Valid reports whether Start <= End.
func (g Gate) Valid() bool {
	return g.Start <= g.End
}

func (g Gate) String() string {
	return fmt.Sprintf("[%d, %d]", g.Start, g.End)
}

// Result is the peak found in one window.
type Result struct {
	Value float64 `json:"value" yaml:"value"`
	Index int     `json:"index" yaml:"index"`
}

// Found reports whether the window contained at least one sample.
func (r Result) Found() bool {
	return r.Index != NoPeak
}

var noPeak = Result{Value: SentinelValue, Index: NoPeak}

// FirstPeak returns the largest signed sample in [0, floor(N*ratio)), clamped
// to the trace. The first of equal maxima wins.
func FirstPeak(signal []float64, ratio float64) (Result, error) {
	if err := core.RequireSamples(signal); err != nil {
		return noPeak, err
	}
	if !core.IsFinite(ratio) || ratio < 0 {
		return noPeak, fmt.Errorf("%w: first peak ratio must be finite and >= 0: %v", core.ErrInvalidParameter, ratio)
	}

	end := len(signal)
	if limit := math.Floor(float64(len(signal)) * ratio); limit < float64(end) {
		end = int(limit)
	}
	return peak(signal, 0, end-1), nil
}

// Scan returns the largest signed sample of each gate shifted by offset,
// restricted to the trace. Results are parallel to gates.
func Scan(signal []float64, gates []Gate, offset int) ([]Result, error) {
	if err := core.RequireSamples(signal); err != nil {
		return nil, err
	}
	for k, g := range gates {
		if !g.Valid() {
			return nil, fmt.Errorf("%w: gate %d has start %d > end %d", core.ErrInvalidGate, k, g.Start, g.End)
		}
	}

	out := make([]Result, len(gates))
	for k, g := range gates {
		s := g.Shift(offset)
		out[k] = peak(signal, max(s.Start, 0), min(s.End, len(signal)-1))
	}
	return out, nil
}

// Offset returns the shift of the first peak of signal relative to
// originFirstPeakIndex, along with that first peak.
func Offset(signal []float64, originFirstPeakIndex int, ratio float64) (int, Result, error) {
	first, err := FirstPeak(signal, ratio)
	if err != nil {
		return 0, first, err
	}
	return first.Index - originFirstPeakIndex, first, nil
}

// peak scans the inclusive range [lo, hi], which the caller has clamped.
func peak(signal []float64, lo, hi int) Result {
	if lo > hi {
		return noPeak
	}
	i := floats.MaxIdx(signal[lo : hi+1])
	return Result{Value: signal[lo+i], Index: lo + i}
}
