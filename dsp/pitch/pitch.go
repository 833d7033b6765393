package pitch

import "math"

// ReferenceA4 is the standard concert pitch in Hz.
const ReferenceA4 = 440.0

// Slaney mel scale constants: linear below 1 kHz, logarithmic above.
const (
	melLinearStep  = 200.0 / 3
	melLogCutoffHz = 1000.0
	melLogCutoff   = melLogCutoffHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27

// HzToMidi converts a frequency in Hz to a (fractional) MIDI note number.
// Returns -Inf for zero and NaN for negative frequencies.
func HzToMidi(hz float64) float64 {
	if hz < 0 {
		return math.NaN()
	}

	return 69 + 12*math.Log2(hz/ReferenceA4)
}

// MidiToHz converts a (fractional) MIDI note number to a frequency in Hz.
func MidiToHz(midi float64) float64 {
	return ReferenceA4 * math.Pow(2, (midi-69)/12)
}

// HzToOcts converts a frequency in Hz to octave numbers relative to the
// given A440 reference, with A0 (27.5 Hz at standard pitch) near octave 0.
func HzToOcts(hz, a440 float64) float64 {
	return math.Log2(hz / (a440 / 16))
}

// OctsToHz is the inverse of [HzToOcts].
func OctsToHz(octs, a440 float64) float64 {
	return (a440 / 16) * math.Pow(2, octs)
}

// HzToMel converts a frequency in Hz to mels. With htk set it uses the HTK
// formula; otherwise the Slaney filterbank convention.
func HzToMel(hz float64, htk bool) float64 {
	if htk {
		return 2595 * math.Log10(1+hz/700)
	}

	mel := hz / melLinearStep
	if hz >= melLogCutoffHz {
		mel = melLogCutoff + math.Log(hz/melLogCutoffHz)/melLogStep
	}

	return mel
}

// MelToHz converts mels to a frequency in Hz. With htk set it uses the HTK
// formula; otherwise the Slaney filterbank convention.
func MelToHz(mel float64, htk bool) float64 {
	if htk {
		return 700 * (math.Pow(10, mel/2595) - 1)
	}

	hz := melLinearStep * mel
	if mel >= melLogCutoff {
		hz = melLogCutoffHz * math.Exp(melLogStep*(mel-melLogCutoff))
	}

	return hz
}

// MelFrequencies returns n frequencies in Hz spaced uniformly on the mel
// scale between fmin and fmax (inclusive).
func MelFrequencies(n int, fmin, fmax float64, htk bool) []float64 {
	if n <= 0 {
		return nil
	}

	minMel := HzToMel(fmin, htk)
	maxMel := HzToMel(fmax, htk)

	out := make([]float64, n)
	if n == 1 {
		out[0] = MelToHz(minMel, htk)
		return out
	}

	step := (maxMel - minMel) / float64(n-1)
	for i := range out {
		out[i] = MelToHz(minMel+float64(i)*step, htk)
	}

	return out
}

// FFTFrequencies returns the center frequencies of the non-negative FFT
// bins for the given sample rate and transform size: 1+nFFT/2 values from
// 0 to Nyquist.
func FFTFrequencies(sampleRate float64, nFFT int) []float64 {
	if nFFT <= 0 {
		return nil
	}

	out := make([]float64, 1+nFFT/2)
	for i := range out {
		out[i] = float64(i) * sampleRate / float64(nFFT)
	}

	return out
}

// CQFrequencies returns the center frequencies of n constant-Q bins
// starting at fmin, with the given bins-per-octave spacing and fractional
// bin tuning offset:
//
//	f_i = fmin * 2^((i + tuning) / binsPerOctave)
func CQFrequencies(n int, fmin float64, binsPerOctave int, tuning float64) []float64 {
	if n <= 0 || binsPerOctave <= 0 {
		return nil
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = fmin * math.Pow(2, (float64(i)+tuning)/float64(binsPerOctave))
	}

	return out
}

// TuningToA4 converts a fractional-bin tuning offset to the corresponding
// A4 reference frequency in Hz.
func TuningToA4(tuning float64, binsPerOctave int) float64 {
	return ReferenceA4 * math.Pow(2, tuning/float64(binsPerOctave))
}

// A4ToTuning converts an A4 reference frequency in Hz to a fractional-bin
// tuning offset for the given resolution.
func A4ToTuning(a4 float64, binsPerOctave int) float64 {
	return float64(binsPerOctave) * math.Log2(a4/ReferenceA4)
}
