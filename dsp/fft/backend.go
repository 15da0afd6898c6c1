package fft

import (
	"fmt"
	"strings"

	"github.com/satprobe/satdsp/dsp/core"
)

// Backend selects the FFT implementation.
type Backend int

const (
	BackendAuto Backend = iota
	BackendAlgoFFT
	BackendGonum
	BackendGoDSP
)

var backendNames = map[Backend]string{
	BackendAuto:    "auto",
	BackendAlgoFFT: "algofft",
	BackendGonum:   "gonum",
	BackendGoDSP:   "godsp",
}

// String returns the configuration name of the backend.
func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend maps a configuration name to a Backend. Matching is
// case-insensitive; the empty string selects BackendAuto.
func ParseBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BackendAuto, nil
	}
	for b, n := range backendNames {
		if n == name {
			return b, nil
		}
	}
	return BackendAuto, fmt.Errorf("%w: unknown fft backend %q", core.ErrInvalidParameter, name)
}

// Backends returns all selectable backends in declaration order.
func Backends() []Backend {
	return []Backend{BackendAuto, BackendAlgoFFT, BackendGonum, BackendGoDSP}
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
