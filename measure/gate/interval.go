package gate

import (
	"fmt"

	"github.com/satprobe/satdsp/dsp/core"
)

// DefaultSoundVelocity is the longitudinal sound velocity in aluminium, m/s.
const DefaultSoundVelocity = 6320.0

// Interval relates the peak of a gate to the peak of the gate before it.
type Interval struct {
	// IndexDifference is the peak index minus the previous gate's peak index.
	IndexDifference int `json:"index_difference" yaml:"index_difference"`
	// Distance is the pulse-echo path converted to micrometres.
	Distance float64 `json:"distance_um" yaml:"distance_um"`
	Velocity float64 `json:"velocity" yaml:"velocity"`
	Valid    bool    `json:"valid" yaml:"valid"`
}

// Intervals converts consecutive gate peaks into layer thicknesses. The
// distance for gate k is v*(d/fs)/2 in micrometres, d being the index
// difference to gate k-1; gate 0 has difference 0. velocities holds one
// value per gate; a shorter slice is padded with its last value and an empty
// one means DefaultSoundVelocity. Gates without a peak, or following one,
// are reported with Valid false.
func Intervals(results []Result, sampleRate float64, velocities []float64) ([]Interval, error) {
	if err := core.RequirePositive("sample rate", sampleRate); err != nil {
		return nil, err
	}
	for k, v := range velocities {
		if err := core.RequirePositive(fmt.Sprintf("sound velocity %d", k), v); err != nil {
			return nil, err
		}
	}

	out := make([]Interval, len(results))
	for k, r := range results {
		v := velocityAt(velocities, k)
		iv := Interval{Velocity: v, Valid: r.Found()}
		if k > 0 {
			prev := results[k-1]
			iv.Valid = iv.Valid && prev.Found()
			if iv.Valid {
				iv.IndexDifference = r.Index - prev.Index
				iv.Distance = Thickness(iv.IndexDifference, sampleRate, v)
			}
		}
		out[k] = iv
	}
	return out, nil
}

// Thickness converts a round-trip delay of indexDiff samples into a one-way
// distance in micrometres.
func Thickness(indexDiff int, sampleRate, velocity float64) float64 {
	return velocity * (float64(indexDiff) / sampleRate) / 2 * 1e6
}

func velocityAt(velocities []float64, k int) float64 {
	switch {
	case len(velocities) == 0:
		return DefaultSoundVelocity
	case k < len(velocities):
		return velocities[k]
	default:
		return velocities[len(velocities)-1]
	}
}
