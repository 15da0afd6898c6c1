package spatial_test

import (
	"fmt"

	"github.com/satprobe/satdsp/dsp/filter/spatial"
)

func ExampleZeroOffset() {
	out, err := spatial.ZeroOffset([]float64{1, 2, 3, 6}, false)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: [-2 -1 0 3]
}

func ExampleThresholdFilter() {
	out, err := spatial.ThresholdFilter([]float64{-3, 0.5, 2, -0.2}, 1, true)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: [-3 0 2 0]
}

func ExampleDefaultKernelSize() {
	fmt.Println(spatial.DefaultKernelSize(2))
	// Output: 13
}
