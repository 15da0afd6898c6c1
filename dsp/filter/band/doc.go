// Package band implements the frequency-domain band filter used on ultrasonic
// A-scans.
//
// A Band is described by two ratios of the spectrum length. Bins strictly
// between the side and middle cut-off indices, and their mirror images in the
// negative-frequency half, are kept; everything else, including DC and the
// bins around Nyquist, is zeroed before the inverse transform.
package band
