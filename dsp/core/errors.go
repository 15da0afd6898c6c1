package core

import (
	"errors"
	"fmt"
	"math"
)

// Errors shared by the signal-processing packages. Callers match them with
// errors.Is; packages wrap them with parameter details.
var (
	ErrEmptyInput       = errors.New("empty input signal")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidGate      = errors.New("invalid gate")

	// ErrDegenerateNormalization names the case where a normalization
	// reference amplitude is zero. The normalizers resolve it to an all-zero
	// output instead of returning it; it is exported so front ends can report
	// the condition consistently.
	ErrDegenerateNormalization = errors.New("degenerate normalization: reference amplitude is zero")
)

// RequireSamples returns ErrEmptyInput when signal has no samples.
func RequireSamples(signal []float64) error {
	if len(signal) == 0 {
		return ErrEmptyInput
	}
	return nil
}

// RequireRatio checks that v is finite and within [0, 1].
func RequireRatio(name string, v float64) error {
	if !IsFinite(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be in [0,1]: %v", ErrInvalidParameter, name, v)
	}
	return nil
}

// RequirePositive checks that v is finite and > 0.
func RequirePositive(name string, v float64) error {
	if !IsFinite(v) || v <= 0 {
		return fmt.Errorf("%w: %s must be > 0: %v", ErrInvalidParameter, name, v)
	}
	return nil
}

// RequireNonNegative checks that v is finite and >= 0.
func RequireNonNegative(name string, v float64) error {
	if !IsFinite(v) || v < 0 {
		return fmt.Errorf("%w: %s must be >= 0: %v", ErrInvalidParameter, name, v)
	}
	return nil
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
