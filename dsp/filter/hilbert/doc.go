// Package hilbert builds the discrete analytic signal of a real trace and
// derives its envelope and quadrature component.
//
// The construction is spectral: the forward transform is made one-sided by
// doubling the positive-frequency bins and zeroing the negative ones, and the
// inverse transform of that spectrum is the analytic signal. Its magnitude is
// the envelope used to locate echoes; its imaginary part is the 90 degree
// phase-shifted companion of the input.
package hilbert
