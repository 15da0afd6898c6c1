package normalize_test

import (
	"fmt"

	"github.com/satprobe/satdsp/measure/gate"
	"github.com/satprobe/satdsp/measure/normalize"
)

func ExampleBScan() {
	out, err := normalize.BScan([]float64{9, -1, 2, -4, 1}, gate.Gate{Start: 1, End: 3}, 0.5)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: [0 0.5 1 1 0]
}

func ExampleCScan() {
	x := make([]float64, 20)
	x[1] = 10 // front surface
	x[9] = 3  // back wall
	scores, err := normalize.CScan(x, []gate.Gate{{Start: 7, End: 11}}, 1)
	if err != nil {
		panic(err)
	}
	fmt.Println(scores)
	// Output: [0.5]
}
