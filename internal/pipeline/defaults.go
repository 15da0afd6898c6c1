package pipeline

import (
	"context"

	"github.com/satprobe/satdsp/dsp/filter/band"
	"github.com/satprobe/satdsp/dsp/filter/hilbert"
	"github.com/satprobe/satdsp/dsp/filter/spatial"
	"github.com/satprobe/satdsp/internal/config"
	"github.com/satprobe/satdsp/internal/logging"
	"github.com/satprobe/satdsp/measure/gate"
	"github.com/satprobe/satdsp/measure/normalize"
)

// Names of the algorithms registered by NewDefaultRegistry.
const (
	AlgorithmFrequencyFilter = "fdomain-filter"
	AlgorithmEnvelope        = "envelope"
	AlgorithmFilterEnvelope  = "filter-envelope"
	AlgorithmHilbert         = "hilbert"
	AlgorithmBScan           = "bscan"
	AlgorithmGaussian        = "gaussian"
	AlgorithmUnsharp         = "unsharp"
	AlgorithmZeroOffset      = "zero-offset"
	AlgorithmThreshold       = "threshold"
)

// NewDefaultRegistry returns a registry holding the built-in algorithms,
// parameterised from cfg. cfg is expected to be valid.
func NewDefaultRegistry(cfg *config.Config, opts ...Option) *Registry {
	r := NewRegistry(opts...)
	fftOpts := cfg.FFTOptions()
	b := cfg.Band()
	kernel := cfg.KernelSize()

	mustRegister(r, AlgorithmFrequencyFilter, Pure(func(x []float64) ([]float64, error) {
		return band.Filter(x, b, fftOpts...)
	}))
	mustRegister(r, AlgorithmEnvelope, Pure(func(x []float64) ([]float64, error) {
		return hilbert.Envelope(x, fftOpts...)
	}))
	mustRegister(r, AlgorithmFilterEnvelope, Pure(func(x []float64) ([]float64, error) {
		return band.FilterWithEnvelope(x, b, fftOpts...)
	}))
	mustRegister(r, AlgorithmHilbert, Pure(func(x []float64) ([]float64, error) {
		return hilbert.Quadrature(x, fftOpts...)
	}))
	mustRegister(r, AlgorithmBScan, bscanAlgorithm(cfg, r.log))
	mustRegister(r, AlgorithmGaussian, Pure(func(x []float64) ([]float64, error) {
		return spatial.GaussianSmooth(x, cfg.Smooth.Sigma, kernel)
	}))
	mustRegister(r, AlgorithmUnsharp, Pure(func(x []float64) ([]float64, error) {
		return spatial.UnsharpMask(x, cfg.Unsharp.Amount, cfg.Smooth.Sigma, cfg.Unsharp.Threshold)
	}))
	mustRegister(r, AlgorithmZeroOffset, Pure(func(x []float64) ([]float64, error) {
		return spatial.ZeroOffset(x, cfg.ZeroOffset.UseAbsolute)
	}))
	mustRegister(r, AlgorithmThreshold, Pure(func(x []float64) ([]float64, error) {
		return spatial.ThresholdFilter(x, cfg.Threshold.Level, cfg.Threshold.UseAbsolute)
	}))
	return r
}

// bscanAlgorithm normalises inside the first configured gate, or over the
// whole trace when no gate is configured.
func bscanAlgorithm(cfg *config.Config, log logging.Logger) Algorithm {
	return AlgorithmFunc(func(ctx context.Context, x []float64) ([]float64, error) {
		g := gate.Gate{Start: 0, End: len(x) - 1}
		if len(cfg.Gate.Gates) > 0 {
			g = cfg.Gate.Gates[0]
		}
		if err := normalize.IsDegenerate(x, g); err != nil {
			log.WithContext(ctx).Warn("b-scan gate resolved to zeros", logging.Fields{
				"gate":   g.String(),
				"reason": err.Error(),
			})
		}
		return normalize.BScan(x, g, cfg.BScan.ThresholdRatio)
	})
}

func mustRegister(r *Registry, name string, alg Algorithm) {
	if err := r.Register(name, alg); err != nil {
		panic(err)
	}
}
