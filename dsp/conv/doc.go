// Package conv provides direct time-domain convolution of short kernels.
//
// Filterbank construction only ever convolves against small smoothing
// kernels, so the package sticks to the O(N*M) direct form and the usual
// output trims:
//
//	result, err := conv.Direct(signal, kernel)              // full length
//	result, err := conv.ConvolveMode(signal, kernel, conv.ModeSame)
//
// [ModeSame] centers the result on the first input, matching the
// convention of common scientific tooling.
package conv
