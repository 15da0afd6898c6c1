package gate_test

import (
	"fmt"

	"github.com/satprobe/satdsp/measure/gate"
)

func ExampleScan() {
	results, err := gate.Scan([]float64{0, 5, 9, 2, 0}, []gate.Gate{{Start: 1, End: 3}, {Start: 6, End: 8}}, 0)
	if err != nil {
		panic(err)
	}
	for _, r := range results {
		if !r.Found() {
			fmt.Println("no peak")
			continue
		}
		fmt.Printf("value=%g index=%d\n", r.Value, r.Index)
	}
	// Output:
	// value=9 index=2
	// no peak
}

func ExampleThickness() {
	fmt.Printf("%.1f um\n", gate.Thickness(100, 100e6, gate.DefaultSoundVelocity))
	// Output: 3160.0 um
}
