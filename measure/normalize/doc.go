// Package normalize scores A-scans against gates for B-scan and C-scan
// imaging.
//
// A B-scan line is the rectified trace inside one gate divided by a fraction
// of its peak, clipped to 1. A C-scan pixel is one scalar per gate. CScan
// reports where inside the shifted gate the peak fell, 1 at the gate start
// and 0 at its end; CScanAmplitude reports the peak value itself.
package normalize
