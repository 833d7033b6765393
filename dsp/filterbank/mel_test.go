package filterbank

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMelShape(t *testing.T) {
	const (
		sr   = 22050
		nFFT = 2048
	)

	m, err := Mel(sr, nFFT)
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := m.Dims()
	if rows != 128 || cols != 1+nFFT/2 {
		t.Fatalf("shape = (%d, %d), want (128, %d)", rows, cols, 1+nFFT/2)
	}

	m, err = Mel(sr, nFFT, WithMelBands(40))
	if err != nil {
		t.Fatal(err)
	}

	rows, _ = m.Dims()
	if rows != 40 {
		t.Fatalf("rows = %d, want 40", rows)
	}
}

func TestMelFiltersNonNegativeAndUnimodal(t *testing.T) {
	m, err := Mel(22050, 2048, WithMelBands(40))
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := m.Dims()
	for r := 0; r < rows; r++ {
		peak := 0
		for c := 0; c < cols; c++ {
			v := m.At(r, c)
			if v < 0 {
				t.Fatalf("negative weight %v at (%d, %d)", v, r, c)
			}

			if v > m.At(r, peak) {
				peak = c
			}
		}

		// A triangular filter decreases monotonically away from its peak.
		for c := 1; c <= peak; c++ {
			if m.At(r, c) < m.At(r, c-1)-1e-12 {
				t.Fatalf("filter %d not increasing before peak at bin %d", r, c)
			}
		}

		for c := peak + 1; c < cols; c++ {
			if m.At(r, c) > m.At(r, c-1)+1e-12 {
				t.Fatalf("filter %d not decreasing after peak at bin %d", r, c)
			}
		}
	}
}

func TestMelRangeLimitsSupport(t *testing.T) {
	const (
		sr   = 22050
		nFFT = 2048
	)

	m, err := Mel(sr, nFFT, WithMelBands(40), WithMelRange(300, 4000))
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := m.Dims()
	for c := 0; c < cols; c++ {
		hz := float64(c) * sr / nFFT
		if hz >= 300 && hz <= 4000 {
			continue
		}

		for r := 0; r < rows; r++ {
			if m.At(r, c) != 0 {
				t.Fatalf("weight %v at %g Hz lies outside [300, 4000]", m.At(r, c), hz)
			}
		}
	}
}

func TestMelHTKDiffersFromSlaney(t *testing.T) {
	slaney, err := Mel(22050, 1024, WithMelBands(40))
	if err != nil {
		t.Fatal(err)
	}

	htk, err := Mel(22050, 1024, WithMelBands(40), WithHTK())
	if err != nil {
		t.Fatal(err)
	}

	if mat.EqualApprox(slaney, htk, 1e-9) {
		t.Fatal("HTK and Slaney filterbanks should differ")
	}
}

func TestMelSlaneyNormalization(t *testing.T) {
	m, err := Mel(22050, 2048, WithMelBands(40))
	if err != nil {
		t.Fatal(err)
	}

	// With Slaney normalization every filter has peak weight
	// 2/(f_hi - f_lo), so row maxima shrink as bandwidth grows toward
	// the high end of the mel scale.
	rows, cols := m.Dims()

	rowMax := func(r int) float64 {
		peak := 0.0
		for c := 0; c < cols; c++ {
			if m.At(r, c) > peak {
				peak = m.At(r, c)
			}
		}

		return peak
	}

	if !(rowMax(rows-1) < rowMax(0)) {
		t.Fatalf("expected narrow low filters to peak higher: low=%v high=%v",
			rowMax(0), rowMax(rows-1))
	}
}

func TestMelValidation(t *testing.T) {
	cases := []struct {
		name string
		sr   float64
		nFFT int
		opts []MelOption
	}{
		{"zero sample rate", 0, 2048, nil},
		{"zero fft size", 22050, 0, nil},
		{"zero bands", 22050, 2048, []MelOption{WithMelBands(0)}},
		{"inverted range", 22050, 2048, []MelOption{WithMelRange(4000, 300)}},
		{"negative fmin", 22050, 2048, []MelOption{WithMelRange(-10, math.Inf(1))}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Mel(tc.sr, tc.nFFT, tc.opts...)
			if !errors.Is(err, ErrParameter) {
				t.Fatalf("expected ErrParameter, got %v", err)
			}
		})
	}
}
