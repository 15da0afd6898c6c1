package signal

import (
	"fmt"
	"math"

	"github.com/satprobe/satdsp/dsp/core"
)

// Echo is one reflection in a pulse-echo trace.
type Echo struct {
	// Delay is the arrival time of the echo center in seconds.
	Delay float64
	// Amplitude is the peak value; negative values model a phase inversion,
	// as at a void or delamination.
	Amplitude float64
}

// EchoTrain synthesizes an A-scan as a sum of Gaussian-windowed tone bursts.
// Each burst has carrier centerHz, spans about cycles periods between its
// 3-sigma points, and peaks at its Delay with value Amplitude.
func (g *Generator) EchoTrain(echoes []Echo, centerHz, cycles float64, samples int) ([]float64, error) {
	if err := requireLength(samples); err != nil {
		return nil, err
	}
	if err := core.RequirePositive("center frequency", centerHz); err != nil {
		return nil, err
	}
	if err := core.RequirePositive("cycles", cycles); err != nil {
		return nil, err
	}

	fs := g.cfg.SampleRate
	sigma := cycles / (6 * centerHz)
	out := make([]float64, samples)
	for k, e := range echoes {
		if !core.IsFinite(e.Delay) || !core.IsFinite(e.Amplitude) {
			return nil, fmt.Errorf("%w: echo %d is not finite", core.ErrInvalidParameter, k)
		}
		// Only samples within 5 sigma contribute measurably.
		first := max(int(math.Floor((e.Delay-5*sigma)*fs)), 0)
		last := min(int(math.Ceil((e.Delay+5*sigma)*fs)), samples-1)
		for i := first; i <= last; i++ {
			dt := float64(i)/fs - e.Delay
			w := math.Exp(-dt * dt / (2 * sigma * sigma))
			out[i] += e.Amplitude * w * math.Cos(2*math.Pi*centerHz*dt)
		}
	}
	return out, nil
}
