package pitch

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidNote is returned when a note name cannot be parsed.
var ErrInvalidNote = errors.New("pitch: invalid note name")

// Semitone offsets of the natural notes relative to C.
var naturalOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var sharpNames = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// NoteToMidi parses a note name in scientific pitch notation and returns
// its MIDI note number. Accidentals stack ("F##2" is two semitones above
// F2); a missing octave defaults to 0.
func NoteToMidi(note string) (float64, error) {
	if note == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidNote)
	}

	letter := note[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}

	offset, ok := naturalOffsets[letter]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, note)
	}

	rest := note[1:]
	acc := 0

	for len(rest) > 0 {
		if rest[0] == '#' {
			acc++
		} else if rest[0] == 'b' || rest[0] == '!' {
			acc--
		} else {
			break
		}

		rest = rest[1:]
	}

	oct := 0

	if len(rest) > 0 {
		v, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNote, note)
		}

		oct = v
	}

	return float64(12*(oct+1) + offset + acc), nil
}

// NoteToHz parses a note name and returns its frequency in Hz.
func NoteToHz(note string) (float64, error) {
	midi, err := NoteToMidi(note)
	if err != nil {
		return 0, err
	}

	return MidiToHz(midi), nil
}

// MidiToNote returns the sharp-spelled note name of the nearest
// equal-tempered pitch, e.g. MidiToNote(69.2) == "A4".
func MidiToNote(midi float64) string {
	n := int(midi + 0.5)
	if midi < 0 {
		n = int(midi - 0.5)
	}

	pc := ((n % 12) + 12) % 12
	oct := n/12 - 1

	if n < 0 && n%12 != 0 {
		oct--
	}

	return sharpNames[pc] + strconv.Itoa(oct)
}
