package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-filterbank/dsp/core"
)

func ExampleLinearToDB() {
	fmt.Printf("%.1f dB\n", core.LinearToDB(0.5))
	// Output:
	// -6.0 dB
}

func ExampleClamp() {
	fmt.Println(core.Clamp(1.5, 0, 1))
	// Output:
	// 1
}
