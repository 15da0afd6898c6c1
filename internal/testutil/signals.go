package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Burst generates a Gaussian-windowed cosine centred on sample center, the
// shape of a single ultrasonic echo. sigma is in samples and period is the
// carrier period in samples.
func Burst(length, center int, sigma, period, amplitude float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		d := float64(i - center)
		out[i] = amplitude * math.Exp(-d*d/(2*sigma*sigma)) * math.Cos(2*math.Pi*d/period)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
