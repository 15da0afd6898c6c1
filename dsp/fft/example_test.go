package fft_test

import (
	"fmt"
	"math/cmplx"

	"github.com/satprobe/satdsp/dsp/fft"
)

func ExampleForward() {
	spec, err := fft.Forward([]float64{1, 1, 1, 1})
	if err != nil {
		panic(err)
	}
	for _, c := range spec {
		fmt.Printf("%.1f ", cmplx.Abs(c))
	}
	fmt.Println()
	// Output: 4.0 0.0 0.0 0.0
}

func ExampleFrequencyAxis() {
	freq, err := fft.FrequencyAxis(4, 4)
	if err != nil {
		panic(err)
	}
	fmt.Println(freq)
	// Output: [0 1 -2 -1]
}
