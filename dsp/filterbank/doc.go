// Package filterbank provides pitch-aware spectral filterbank builders.
//
// Three families of banks are supported:
//
//   - [ConstantQ] builds a set of complex time-domain kernels spaced
//     logarithmically in frequency with a constant ratio of center
//     frequency to bandwidth:
//
//     f_i = fmin * 2^((i + tuning) / binsPerOctave)
//     Q   = resolution / (2^(1/binsPerOctave) - 1)
//     N_i = ceil(Q * sr / f_i)
//
//     Each kernel is a windowed complex exponential of length N_i,
//     normalized and center-padded to a shared width (a power of two by
//     default) so that a downstream engine can apply the whole basis with
//     a single FFT per frame.
//
//   - [CQToChroma] builds the folding matrix that collapses constant-Q
//     bins of arbitrary octave into a fixed set of pitch classes.
//
//   - [Mel] and [Chroma] build the classic triangular mel filterbank and
//     the Gaussian-bump chromagram weights over linear FFT bins.
//
// All builders are pure functions over their parameters: identical inputs
// produce identical outputs, no state is shared, and they are safe to call
// concurrently. Invalid parameters fail with an error wrapping
// [ErrParameter] before any computation starts; no partial results are
// ever returned.
package filterbank
