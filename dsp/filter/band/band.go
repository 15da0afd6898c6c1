package band

import (
	"fmt"
	"math"

	"github.com/satprobe/satdsp/dsp/core"
)

// Band holds the cut-off ratios of the pass region. Both ratios are fractions
// of the spectrum length halved, so 1 addresses the Nyquist bin.
type Band struct {
	MiddleCutoffRatio float64
	SideCutoffRatio   float64
}

// DefaultBand returns the ratios used by the inspection front end.
func DefaultBand() Band {
	return Band{MiddleCutoffRatio: 0.3, SideCutoffRatio: 0.03}
}

// Validate checks that both ratios are finite and in [0,1].
func (b Band) Validate() error {
	if err := core.RequireRatio("middle cutoff ratio", b.MiddleCutoffRatio); err != nil {
		return err
	}
	return core.RequireRatio("side cutoff ratio", b.SideCutoffRatio)
}

// Indices returns floor(n*middle/2) and floor(n*side/2).
func (b Band) Indices(n int) (middle, side int) {
	middle = int(math.Floor(float64(n) * b.MiddleCutoffRatio / 2))
	side = int(math.Floor(float64(n) * b.SideCutoffRatio / 2))
	return middle, side
}

// Empty reports whether no bin of an n-point spectrum is kept.
func (b Band) Empty(n int) bool {
	middle, side := b.Indices(n)
	return middle <= side+1
}

// Keeps reports whether bin i of an n-point spectrum lies in the pass region.
func (b Band) Keeps(i, n int) bool {
	middle, side := b.Indices(n)
	return keeps(i, n, middle, side)
}

func keeps(i, n, middle, side int) bool {
	return (side < i && i < middle) || (n-middle < i && i < n-side)
}

// Apply zeroes the bins outside the pass region in place.
func (b Band) Apply(bins []complex128) {
	n := len(bins)
	middle, side := b.Indices(n)
	for i := range bins {
		if !keeps(i, n, middle, side) {
			bins[i] = 0
		}
	}
}

// String formats the band for logs.
func (b Band) String() string {
	return fmt.Sprintf("band(middle=%g, side=%g)", b.MiddleCutoffRatio, b.SideCutoffRatio)
}
