package core_test

import (
	"errors"
	"fmt"

	"github.com/satprobe/satdsp/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(50e6),
	)
	fmt.Printf("sampleRate=%.0f\n", cfg.SampleRate)
	// Output:
	// sampleRate=50000000
}

func ExampleRequireRatio() {
	err := core.RequireRatio("middle cutoff ratio", 1.2)
	fmt.Println(errors.Is(err, core.ErrInvalidParameter))
	fmt.Println(err)
	// Output:
	// true
	// invalid parameter: middle cutoff ratio must be in [0,1]: 1.2
}
