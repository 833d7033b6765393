package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got matches want element-wise
// within the absolute tolerance eps. On failure it reports the worst
// offending index.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d elements, want %d", len(got), len(want))
	}

	worst, at := 0.0, -1

	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > worst {
			worst, at = d, i
		}
	}

	if worst > eps {
		t.Fatalf("index %d: got %v, want %v (|diff| %v exceeds %v)",
			at, got[at], want[at], worst, eps)
	}
}

// RequireFinite fails t if data contains a NaN or an infinity.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			continue
		}

		t.Fatalf("index %d: non-finite value %v", i, v)
	}
}
