package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	godsp "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/satprobe/satdsp/dsp/core"
)

// Transformer computes discrete Fourier transforms with a fixed backend.
// A Transformer holds no buffers and is safe for concurrent use.
type Transformer struct {
	backend Backend
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithBackend selects the FFT backend.
func WithBackend(b Backend) Option {
	return func(t *Transformer) {
		if _, ok := backendNames[b]; ok {
			t.backend = b
		}
	}
}

// New returns a Transformer. Without options it uses BackendAuto.
func New(opts ...Option) *Transformer {
	t := &Transformer{backend: BackendAuto}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Backend returns the configured backend.
func (t *Transformer) Backend() Backend {
	return t.backend
}

// Forward returns the unnormalized N-point DFT of a real signal.
func (t *Transformer) Forward(signal []float64) ([]complex128, error) {
	if err := core.RequireSamples(signal); err != nil {
		return nil, err
	}
	in := make([]complex128, len(signal))
	for i, v := range signal {
		in[i] = complex(v, 0)
	}
	return t.transform(in, false)
}

// ForwardComplex returns the unnormalized N-point DFT of a complex sequence.
func (t *Transformer) ForwardComplex(x []complex128) ([]complex128, error) {
	if len(x) == 0 {
		return nil, core.ErrEmptyInput
	}
	return t.transform(append([]complex128(nil), x...), false)
}

// InverseComplex returns the 1/N-normalized inverse DFT of spectrum.
func (t *Transformer) InverseComplex(spectrum []complex128) ([]complex128, error) {
	if len(spectrum) == 0 {
		return nil, core.ErrEmptyInput
	}
	return t.transform(append([]complex128(nil), spectrum...), true)
}

// Inverse returns the real part of the normalized inverse DFT. The imaginary
// residue is discarded; use InverseComplex to keep it.
func (t *Transformer) Inverse(spectrum []complex128) ([]float64, error) {
	seq, err := t.InverseComplex(spectrum)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(seq))
	for i, c := range seq {
		out[i] = real(c)
	}
	return out, nil
}

// transform runs the selected backend on in, which the caller owns.
func (t *Transformer) transform(in []complex128, inverse bool) ([]complex128, error) {
	n := len(in)
	if n == 1 {
		// The 1-point DFT and its normalized inverse are both the identity.
		return in, nil
	}

	switch t.backend {
	case BackendAlgoFFT:
		return algoTransform(in, inverse)
	case BackendGonum:
		return gonumTransform(in, inverse), nil
	case BackendGoDSP:
		return goDSPTransform(in, inverse), nil
	default:
		if isPowerOf2(n) {
			if out, err := algoTransform(in, inverse); err == nil {
				return out, nil
			}
		}
		return gonumTransform(in, inverse), nil
	}
}

func algoTransform(in []complex128, inverse bool) ([]complex128, error) {
	if !isPowerOf2(len(in)) {
		return nil, fmt.Errorf("%w: algofft backend needs a power-of-two length, got %d", core.ErrInvalidParameter, len(in))
	}
	plan, err := algofft.NewPlan64(len(in))
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create FFT plan for %d points: %w", len(in), err)
	}

	out := make([]complex128, len(in))
	if inverse {
		err = plan.Inverse(out, in)
	} else {
		err = plan.Forward(out, in)
	}
	if err != nil {
		return nil, fmt.Errorf("fft: transform of %d points failed: %w", len(in), err)
	}
	return out, nil
}

func gonumTransform(in []complex128, inverse bool) []complex128 {
	plan := fourier.NewCmplxFFT(len(in))
	if !inverse {
		return plan.Coefficients(nil, in)
	}

	// gonum's Sequence is unnormalized.
	out := plan.Sequence(nil, in)
	scale := complex(1/float64(len(in)), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

func goDSPTransform(in []complex128, inverse bool) []complex128 {
	if inverse {
		return godsp.IFFT(in)
	}
	return godsp.FFT(in)
}
