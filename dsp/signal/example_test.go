package signal_test

import (
	"fmt"
	"math"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator(core.WithSampleRate(1000))
	x, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}
	for i := range x {
		if math.Abs(x[i]) < 1e-12 {
			x[i] = 0
		}
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleNormalize() {
	x, err := signal.Normalize([]float64{-0.5, 0.25, 1}, 0.8)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f %.2f %.2f\n", x[0], x[1], x[2])

	// Output:
	// -0.40 0.20 0.80
}

func ExampleGenerator_EchoTrain() {
	g := signal.NewGenerator(core.WithSampleRate(100e6))
	x, err := g.EchoTrain([]signal.Echo{{Delay: 1e-6, Amplitude: 0.8}}, 5e6, 3, 300)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f\n", x[100])

	// Output:
	// 0.80
}
