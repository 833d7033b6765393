// Package pitch provides frequency and pitch unit conversions.
//
// All conversions are pure scalar (or slice-generating) functions built
// around the equal-tempered scale with a configurable A4 reference:
//
//	midi(f)  = 69 + 12*log2(f/440)
//	hz(m)    = 440 * 2^((m-69)/12)
//	octs(f)  = log2(f / (A440/16))     (octave number, A440-referenced)
//
// Mel conversions support both the Slaney filterbank convention (linear
// below 1 kHz, logarithmic above) and the HTK formula
// 2595*log10(1 + f/700).
//
// Note names follow scientific pitch notation with C4 = MIDI 60. Sharps
// ('#'), flats ('b') and repeated accidentals are accepted, e.g. "A4",
// "C#3", "Bb-1", "F##2".
package pitch
