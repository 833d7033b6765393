package pitch_test

import (
	"fmt"

	"github.com/cwbudde/algo-filterbank/dsp/pitch"
)

func ExampleNoteToHz() {
	hz, _ := pitch.NoteToHz("C3")
	fmt.Printf("C3 = %.2f Hz\n", hz)

	hz, _ = pitch.NoteToHz("A4")
	fmt.Printf("A4 = %.2f Hz\n", hz)
	// Output:
	// C3 = 130.81 Hz
	// A4 = 440.00 Hz
}

func ExampleCQFrequencies() {
	freqs := pitch.CQFrequencies(13, 55, 12, 0)
	fmt.Printf("%.1f ... %.1f\n", freqs[0], freqs[12])
	// Output:
	// 55.0 ... 110.0
}

func ExampleMidiToNote() {
	fmt.Println(pitch.MidiToNote(60))
	fmt.Println(pitch.MidiToNote(69.3))
	// Output:
	// C4
	// A4
}
