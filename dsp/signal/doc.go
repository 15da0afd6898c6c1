// Package signal generates deterministic test traces: tones, seeded noise and
// synthetic pulse-echo A-scans built from windowed tone bursts.
package signal
