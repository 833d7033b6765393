// Command cqinfo prints the geometry of a constant-Q kernel basis.
//
// Usage:
//
//	cqinfo [flags]
//
// It lists every bin with its note name, center frequency, kernel
// length, and the fraction of the shared frame the kernel occupies.
//
// Examples:
//
//	cqinfo -sr 22050 -bins 84
//	cqinfo -sr 44100 -fmin C2 -bins 48 -bpo 24
//	cqinfo -sr 22050 -bins 36 -window blackman -nopad
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-filterbank/dsp/filterbank"
	"github.com/cwbudde/algo-filterbank/dsp/pitch"
	"github.com/cwbudde/algo-filterbank/dsp/window"
)

func main() {
	sr := flag.Float64("sr", 22050, "sample rate in Hz")
	fmin := flag.String("fmin", "", "lowest bin as note name (C2) or frequency in Hz; default C1")
	bins := flag.Int("bins", 84, "number of constant-Q bins")
	bpo := flag.Int("bpo", 12, "bins per octave")
	tuning := flag.Float64("tuning", 0, "tuning deviation in fractional bins")
	resolution := flag.Float64("resolution", 2, "filter resolution factor")
	norm := flag.Float64("norm", 1, "kernel normalization order")
	winName := flag.String("window", "hann", "window function name")
	noPad := flag.Bool("nopad", false, "size frames to the longest kernel instead of a power of two")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cqinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the geometry of a constant-Q kernel basis.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cqinfo -sr 22050 -bins 84\n")
		fmt.Fprintf(os.Stderr, "  cqinfo -sr 44100 -fmin C2 -bins 48 -bpo 24\n")
	}
	flag.Parse()

	opts := []filterbank.CQOption{
		filterbank.WithBins(*bins),
		filterbank.WithBinsPerOctave(*bpo),
		filterbank.WithTuning(*tuning),
		filterbank.WithResolution(*resolution),
		filterbank.WithNorm(*norm),
		filterbank.WithPadFFT(!*noPad),
	}

	if *fmin != "" {
		hz, err := parseFMin(*fmin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, filterbank.WithFMin(hz))
	}

	if typ, ok := window.ByName(*winName); ok {
		opts = append(opts, filterbank.WithWindow(typ))
	} else {
		fmt.Fprintf(os.Stderr, "error: unknown window %q\n", *winName)
		os.Exit(1)
	}

	basis, err := filterbank.ConstantQ(*sr, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printBasis(basis)
}

// parseFMin accepts either a note name (C2, F#3) or a raw frequency.
func parseFMin(s string) (float64, error) {
	if hz, err := strconv.ParseFloat(s, 64); err == nil {
		return hz, nil
	}
	return pitch.NoteToHz(s)
}

func printBasis(basis *filterbank.CQBasis) {
	fmt.Printf("sample rate: %.0f Hz\n", basis.SampleRate())
	fmt.Printf("Q factor:    %.3f\n", basis.Q())
	fmt.Printf("frame width: %d samples (%.1f ms)\n\n",
		basis.Width(), 1000*float64(basis.Width())/basis.SampleRate())

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Bin\tNote\tFreq [Hz]\tLength\tFrame Use\n")
	fmt.Fprintf(tw, "---\t----\t---------\t------\t---------\n")

	for i, f := range basis.Frequencies() {
		note := pitch.MidiToNote(math.Round(pitch.HzToMidi(f)))
		length := basis.Lengths()[i]

		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\t%.1f%%\n",
			i, note, f, length, 100*float64(length)/float64(basis.Width()))
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
