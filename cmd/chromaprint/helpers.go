package main

import (
	"fmt"
	"math/cmplx"
	"os"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-filterbank/dsp/filterbank"
	"github.com/cwbudde/algo-filterbank/dsp/spectrum"
)

// readWAVMono decodes a WAV file into normalized float64 samples,
// averaging channels down to mono.
func readWAVMono(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("no channels in %s", path)
	}

	samples, err := pcmToMono(buf, int(decoder.BitDepth))
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	return samples, float64(buf.Format.SampleRate), nil
}

// pcmToMono converts an interleaved integer PCM buffer to mono float64
// in [-1, 1).
func pcmToMono(buf *audio.IntBuffer, bitDepth int) ([]float64, error) {
	if bitDepth < 1 || bitDepth > 32 {
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	channels := buf.Format.NumChannels
	scale := 1 / float64(int64(1)<<(bitDepth-1))
	frames := len(buf.Data) / channels

	out := make([]float64, frames)
	for i := range out {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}

		out[i] = sum / float64(channels) * scale
	}

	return out, nil
}

// frameSignal slices x into size-length frames advancing by hop samples.
// The tail that does not fill a whole frame is dropped.
func frameSignal(x []float64, size, hop int) [][]float64 {
	if size <= 0 || hop <= 0 || len(x) < size {
		return nil
	}

	n := 1 + (len(x)-size)/hop
	frames := make([][]float64, n)

	for i := range frames {
		frames[i] = x[i*hop : i*hop+size]
	}

	return frames
}

// analyzer folds framed audio through a constant-Q basis into chroma
// vectors, applying kernels in the frequency domain.
type analyzer struct {
	basis    *filterbank.CQBasis
	spectral [][]complex128
	fold     *mat.Dense
	plan     *algofft.Plan[complex128]
	nChroma  int
}

func newAnalyzer(sampleRate float64, nBins, bpo, nChroma int) (*analyzer, error) {
	basis, err := filterbank.ConstantQ(sampleRate,
		filterbank.WithBins(nBins),
		filterbank.WithBinsPerOctave(bpo),
		filterbank.WithNorm(2))
	if err != nil {
		return nil, err
	}

	spectral, err := basis.Spectral()
	if err != nil {
		return nil, err
	}

	fold, err := filterbank.CQToChroma(nBins,
		filterbank.WithFoldBinsPerOctave(bpo),
		filterbank.WithChromaBins(nChroma))
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(basis.Width())
	if err != nil {
		return nil, err
	}

	return &analyzer{
		basis:    basis,
		spectral: spectral,
		fold:     fold,
		plan:     plan,
		nChroma:  nChroma,
	}, nil
}

// chromaFrame returns the chroma magnitudes of one frame. The frame must
// span exactly the basis width.
func (a *analyzer) chromaFrame(frame []float64) ([]float64, error) {
	if len(frame) != a.basis.Width() {
		return nil, fmt.Errorf("frame length %d does not match basis width %d",
			len(frame), a.basis.Width())
	}

	src := make([]complex128, len(frame))
	for i, v := range frame {
		src[i] = complex(v, 0)
	}

	dst := make([]complex128, len(frame))
	if err := a.plan.Forward(dst, src); err != nil {
		return nil, err
	}

	// Inner product against each kernel via Parseval: the time-domain
	// correlation equals the frequency-domain one divided by the width.
	responses := make([]complex128, a.basis.NumBins())
	invN := complex(1/float64(a.basis.Width()), 0)

	for i, row := range a.spectral {
		var acc complex128
		for k, s := range row {
			acc += cmplx.Conj(s) * dst[k]
		}

		responses[i] = acc * invN
	}

	cq := spectrum.Magnitude(responses)

	chroma := mat.NewVecDense(a.nChroma, nil)
	chroma.MulVec(a.fold, mat.NewVecDense(len(cq), cq))

	return chroma.RawVector().Data, nil
}

// process returns one chroma vector per frame.
func (a *analyzer) process(samples []float64, hop int) ([][]float64, error) {
	frames := frameSignal(samples, a.basis.Width(), hop)

	out := make([][]float64, len(frames))
	for i, frame := range frames {
		chroma, err := a.chromaFrame(frame)
		if err != nil {
			return nil, err
		}

		out[i] = chroma
	}

	return out, nil
}
