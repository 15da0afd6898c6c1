// Package gate locates peaks inside index windows ("gates") of an A-scan.
//
// Gate bounds are fixed relative to a reference trace. When the front-surface
// echo of another trace arrives earlier or later, Offset measures the shift
// from the first dominant peak and Scan applies it to every gate, so a
// physical feature stays inside the same gate across captures.
//
// Windows that fall outside the trace after shifting are not errors: their
// Result carries NoPeak and SentinelValue.
package gate
