// Command chromaprint renders a WAV file as a frame-by-frame chromagram.
//
// Usage:
//
//	chromaprint [flags] input.wav
//
// Each output row is one analysis frame: a timestamp followed by the
// level of every pitch class in dB relative to the loudest class of
// that frame.
//
// Examples:
//
//	chromaprint recording.wav
//	chromaprint -bins 48 -bpo 12 -hop 2048 recording.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-filterbank/dsp/core"
)

const dbFloor = -60.0

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func main() {
	bins := flag.Int("bins", 84, "number of constant-Q bins")
	bpo := flag.Int("bpo", 12, "bins per octave")
	nChroma := flag.Int("chroma", 12, "number of pitch classes")
	hop := flag.Int("hop", 0, "hop size in samples; defaults to half the frame width")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: chromaprint [flags] input.wav\n\n")
		fmt.Fprintf(os.Stderr, "Renders a WAV file as a frame-by-frame chromagram.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *bins, *bpo, *nChroma, *hop); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, bins, bpo, nChroma, hop int) error {
	samples, sampleRate, err := readWAVMono(path)
	if err != nil {
		return err
	}

	a, err := newAnalyzer(sampleRate, bins, bpo, nChroma)
	if err != nil {
		return err
	}

	if hop <= 0 {
		hop = a.basis.Width() / 2
	}

	chromas, err := a.process(samples, hop)
	if err != nil {
		return err
	}

	if len(chromas) == 0 {
		return fmt.Errorf("input shorter than one frame (%d samples)", a.basis.Width())
	}

	printChromagram(chromas, sampleRate, hop, nChroma)

	return nil
}

func printChromagram(chromas [][]float64, sampleRate float64, hop, nChroma int) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "Time [s]\t")
	for i := 0; i < nChroma; i++ {
		// Label columns by pitch class when the resolution allows it.
		if nChroma == 12 {
			fmt.Fprintf(tw, "%s\t", pitchClasses[i])
		} else {
			fmt.Fprintf(tw, "c%d\t", i)
		}
	}
	fmt.Fprintln(tw)

	for i, chroma := range chromas {
		fmt.Fprintf(tw, "%.3f\t", float64(i*hop)/sampleRate)

		peak := 0.0
		for _, v := range chroma {
			if v > peak {
				peak = v
			}
		}

		for _, v := range chroma {
			db := dbFloor
			if peak > 0 && v > 0 {
				db = core.Clamp(core.LinearToDB(v/peak), dbFloor, 0)
			}

			fmt.Fprintf(tw, "%.1f\t", db)
		}

		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
