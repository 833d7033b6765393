package filterbank

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-filterbank/internal/testutil"
)

// A pure tone at a bin's center frequency must produce its strongest
// response on that bin when correlated against the kernel basis.
func TestConstantQSineResponse(t *testing.T) {
	const sr = 22050

	basis, err := ConstantQ(sr, WithBins(24), WithNorm(2))
	if err != nil {
		t.Fatal(err)
	}

	for _, bin := range []int{6, 12, 18} {
		tone := testutil.DeterministicSine(basis.Frequencies()[bin], sr, 1, basis.Width())

		responses := make([]float64, basis.NumBins())
		for i, k := range basis.Kernels() {
			var acc complex128
			for j, v := range k {
				acc += v * complex(tone[j], 0)
			}

			responses[i] = math.Hypot(real(acc), imag(acc))
		}

		testutil.RequireFinite(t, responses)

		best := 0
		for i, r := range responses {
			if r > responses[best] {
				best = i
			}
		}

		if best != bin {
			t.Fatalf("tone at bin %d peaked on bin %d (responses %v)", bin, best, responses)
		}
	}
}
