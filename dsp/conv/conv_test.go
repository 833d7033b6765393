package conv

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-filterbank/internal/testutil"
)

func TestDirect(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected []float64
	}{
		{
			name:     "simple 3x3",
			a:        []float64{1, 2, 3},
			b:        []float64{1, 1, 1},
			expected: []float64{1, 3, 6, 5, 3},
		},
		{
			name:     "impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{1},
			expected: []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "delayed impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{0, 0, 1},
			expected: []float64{0, 0, 1, 2, 3, 4, 5},
		},
		{
			name:     "symmetric",
			a:        []float64{1, 2, 1},
			b:        []float64{1, 2, 1},
			expected: []float64{1, 4, 6, 4, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Direct(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.RequireSliceNearlyEqual(t, result, tt.expected, 1e-10)
		})
	}
}

func TestDirectErrors(t *testing.T) {
	_, err := Direct([]float64{}, []float64{1, 2})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	_, err = Direct([]float64{1, 2}, []float64{})
	if !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}
}

func TestDirectToLengthMismatch(t *testing.T) {
	dst := make([]float64, 3)

	err := DirectTo(dst, []float64{1, 2, 3}, []float64{1, 1})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestConvolveModeSame(t *testing.T) {
	a := []float64{0, 0, 1, 0, 0}
	b := []float64{0.25, 0.5, 0.25}

	result, err := ConvolveMode(a, b, ModeSame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result) != len(a) {
		t.Fatalf("same mode must preserve input length: got %d", len(result))
	}

	testutil.RequireSliceNearlyEqual(t, result, []float64{0, 0.25, 0.5, 0.25, 0}, 1e-10)
}

func TestConvolveModeSameEvenKernel(t *testing.T) {
	a := []float64{1, 0, 0, 0}
	b := []float64{1, 1}

	result, err := ConvolveMode(a, b, ModeSame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, result, []float64{1, 1, 0, 0}, 1e-10)
}

func TestConvolveModeValid(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{1, 1, 1}

	result, err := ConvolveMode(a, b, ModeValid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, result, []float64{6, 9, 12}, 1e-10)
}

func TestConvolveModeFull(t *testing.T) {
	a := []float64{1, 1}
	b := []float64{1, 1}

	result, err := ConvolveMode(a, b, ModeFull)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, result, []float64{1, 2, 1}, 1e-10)
}
