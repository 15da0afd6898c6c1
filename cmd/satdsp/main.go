// Command satdsp processes ultrasonic A-scan traces exported as CSV: spectra,
// band filtering, envelopes, gate scans, B/C-scan normalisation, smoothing
// and layer thickness.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
