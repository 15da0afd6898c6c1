package hilbert_test

import (
	"fmt"

	"github.com/satprobe/satdsp/dsp/filter/hilbert"
)

func ExampleMakeOneSided() {
	bins := []complex128{4, 1, 1, 1}
	hilbert.MakeOneSided(bins)
	fmt.Println(real(bins[0]), real(bins[1]), real(bins[2]), real(bins[3]))
	// Output: 4 2 1 0
}

func ExampleEnvelope() {
	env, err := hilbert.Envelope([]float64{0, 1, 0, -1})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f %.2f %.2f %.2f\n", env[0], env[1], env[2], env[3])
	// Output: 1.00 1.00 1.00 1.00
}
