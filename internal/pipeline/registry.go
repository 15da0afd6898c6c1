// Package pipeline runs named signal-processing algorithms over traces and
// records their output in a store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/logging"
)

var (
	ErrUnknownAlgorithm   = errors.New("pipeline: unknown algorithm")
	ErrDuplicateAlgorithm = errors.New("pipeline: algorithm already registered")
)

// Algorithm transforms one trace. Implementations must not modify data and
// should return a slice of the same length.
type Algorithm interface {
	Process(ctx context.Context, data []float64) ([]float64, error)
}

// AlgorithmFunc adapts a function to Algorithm.
type AlgorithmFunc func(ctx context.Context, data []float64) ([]float64, error)

// Process calls f.
func (f AlgorithmFunc) Process(ctx context.Context, data []float64) ([]float64, error) {
	return f(ctx, data)
}

// Pure wraps a context-free transform.
func Pure(fn func([]float64) ([]float64, error)) Algorithm {
	return AlgorithmFunc(func(_ context.Context, data []float64) ([]float64, error) {
		return fn(data)
	})
}

// Registry maps names to algorithms. It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	algs map[string]Algorithm
	log  logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Registry) {
		r.log = logging.OrNoOp(l)
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		algs: make(map[string]Algorithm),
		log:  &logging.NoOpLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register adds alg under name.
func (r *Registry) Register(name string, alg Algorithm) error {
	if name == "" {
		return fmt.Errorf("%w: algorithm name is required", core.ErrInvalidParameter)
	}
	if alg == nil {
		return fmt.Errorf("%w: algorithm %q is nil", core.ErrInvalidParameter, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.algs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAlgorithm, name)
	}
	r.algs[name] = alg
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.algs))
	for name := range r.algs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the algorithm registered under name.
func (r *Registry) Lookup(name string) (Algorithm, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	alg, ok := r.algs[name]
	return alg, ok
}

// Process runs the named algorithm on data.
func (r *Registry) Process(ctx context.Context, name string, data []float64) ([]float64, error) {
	alg, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := alg.Process(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	r.log.WithContext(ctx).Debug("algorithm finished", logging.Fields{
		"algorithm": name,
		"samples":   len(data),
		"elapsed":   time.Since(start).String(),
	})
	return out, nil
}
