//nolint:revive
package time

import (
	"strconv"
	"testing"

	"github.com/satprobe/satdsp/internal/testutil"
)

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{1024, 4096, 16384} {
		signal := testutil.DeterministicNoise(int64(n), 1, n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))
			for range b.N {
				_, _ = Calculate(signal)
			}
		})
	}
}
