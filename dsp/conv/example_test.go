package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-filterbank/dsp/conv"
)

func ExampleDirect() {
	signal := []float64{1, 2, 3}
	kernel := []float64{1, 1}

	result, _ := conv.Direct(signal, kernel)
	fmt.Println(result)
	// Output:
	// [1 3 5 3]
}

func ExampleConvolveMode() {
	signal := []float64{0, 1, 0, 0}
	smoother := []float64{0.5, 0.5}

	result, _ := conv.ConvolveMode(signal, smoother, conv.ModeSame)
	fmt.Println(result)
	// Output:
	// [0 0.5 0.5 0]
}
