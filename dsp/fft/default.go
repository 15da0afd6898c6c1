package fft

var std = New()

// Forward transforms signal with the default (auto) backend.
func Forward(signal []float64) ([]complex128, error) {
	return std.Forward(signal)
}

// ForwardComplex transforms x with the default (auto) backend.
func ForwardComplex(x []complex128) ([]complex128, error) {
	return std.ForwardComplex(x)
}

// Inverse returns the real part of the inverse transform with the default backend.
func Inverse(spectrum []complex128) ([]float64, error) {
	return std.Inverse(spectrum)
}

// InverseComplex returns the full inverse transform with the default backend.
func InverseComplex(spectrum []complex128) ([]complex128, error) {
	return std.InverseComplex(spectrum)
}
