package filterbank

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-filterbank/dsp/conv"
	"github.com/cwbudde/algo-filterbank/dsp/pitch"
)

type foldConfig struct {
	binsPerOctave int
	nChroma       int
	fmin          float64
	baseC         bool
	smoothing     []float64
}

func defaultFoldConfig() foldConfig {
	return foldConfig{
		binsPerOctave: 12,
		nChroma:       12,
		baseC:         true,
	}
}

// FoldOption configures a chroma folding matrix.
type FoldOption func(*foldConfig)

// WithFoldBinsPerOctave sets the pitch spacing of the input bins.
// Must be an integer multiple of the chroma bin count.
func WithFoldBinsPerOctave(n int) FoldOption {
	return func(c *foldConfig) { c.binsPerOctave = n }
}

// WithChromaBins sets the number of output pitch classes (commonly 12
// or a multiple).
func WithChromaBins(n int) FoldOption {
	return func(c *foldConfig) { c.nChroma = n }
}

// WithFoldFMin anchors input bin 0 at the given frequency in Hz. Without
// it, bin 0 is assumed to sit at MIDI note 24 (32.70 Hz).
func WithFoldFMin(hz float64) FoldOption {
	return func(c *foldConfig) { c.fmin = hz }
}

// WithBaseC aligns chroma row 0 to pitch class C when set, or to pitch
// class A when cleared. Defaults to C.
func WithBaseC(baseC bool) FoldOption {
	return func(c *foldConfig) { c.baseC = baseC }
}

// WithSmoothing spreads each hard bin assignment across neighboring
// columns by same-mode convolution with the given kernel. A nil kernel
// keeps the one-hot assignment.
func WithSmoothing(kernel []float64) FoldOption {
	return func(c *foldConfig) {
		c.smoothing = append([]float64(nil), kernel...)
	}
}

// CQToChroma builds the linear projection that folds nInput constant-Q
// bins of arbitrary octave into a fixed set of pitch-class rows. The
// result has shape (nChroma, nInput); multiplying it against a constant-Q
// frame yields the chroma vector.
func CQToChroma(nInput int, opts ...FoldOption) (*mat.Dense, error) {
	cfg := defaultFoldConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if nInput <= 0 {
		return nil, paramErrorf("input bin count must be positive: %d", nInput)
	}

	if cfg.nChroma <= 0 {
		return nil, paramErrorf("chroma bin count must be positive: %d", cfg.nChroma)
	}

	if cfg.binsPerOctave <= 0 {
		return nil, paramErrorf("bins per octave must be positive: %d", cfg.binsPerOctave)
	}

	if cfg.binsPerOctave%cfg.nChroma != 0 {
		return nil, paramErrorf("bins per octave (%d) must be an integer multiple of chroma bins (%d)",
			cfg.binsPerOctave, cfg.nChroma)
	}

	// Number of adjacent input bins merged into one pitch class.
	nMerge := cfg.binsPerOctave / cfg.nChroma

	// MIDI note of input bin 0, reduced to a pitch class.
	midi0 := math.Mod(24, 12)
	if cfg.fmin > 0 {
		midi0 = math.Mod(pitch.HzToMidi(cfg.fmin), 12)
	}

	// Row rotation aligning row 0 with the requested base pitch class,
	// expressed in chroma rows rather than semitones.
	offset := midi0
	if !cfg.baseC {
		offset = midi0 - 9
	}

	rowRoll := int(math.Round(offset * float64(cfg.nChroma) / 12))

	m := mat.NewDense(cfg.nChroma, nInput, nil)

	for col := 0; col < nInput; col++ {
		// Repeated identity, rolled left by half a merge group, tiled
		// across octaves.
		pos := (col%cfg.binsPerOctave + nMerge/2) % cfg.binsPerOctave

		row := pos/nMerge + rowRoll
		row = ((row % cfg.nChroma) + cfg.nChroma) % cfg.nChroma

		m.Set(row, col, 1)
	}

	if len(cfg.smoothing) > 0 {
		if err := smoothRows(m, cfg.smoothing); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// smoothRows convolves every row with the kernel in same mode.
func smoothRows(m *mat.Dense, kernel []float64) error {
	rows, _ := m.Dims()

	for r := 0; r < rows; r++ {
		row := m.RawRowView(r)

		smoothed, err := conv.ConvolveMode(row, kernel, conv.ModeSame)
		if err != nil {
			return err
		}

		copy(row, smoothed)
	}

	return nil
}

type chromaConfig struct {
	nChroma      int
	a440         float64
	centerOctave float64
	octaveWidth  float64
	norm         float64
	baseC        bool
}

func defaultChromaConfig() chromaConfig {
	return chromaConfig{
		nChroma:      12,
		a440:         440,
		centerOctave: 5,
		octaveWidth:  2,
		norm:         2,
		baseC:        true,
	}
}

// ChromaOption configures a chromagram filterbank.
type ChromaOption func(*chromaConfig)

// WithChromaCount sets the number of pitch-class rows.
func WithChromaCount(n int) ChromaOption {
	return func(c *chromaConfig) { c.nChroma = n }
}

// WithA440 sets the reference tuning frequency in Hz.
func WithA440(hz float64) ChromaOption {
	return func(c *chromaConfig) { c.a440 = hz }
}

// WithCenterOctave centers the octave-weighting Gaussian dome.
func WithCenterOctave(oct float64) ChromaOption {
	return func(c *chromaConfig) { c.centerOctave = oct }
}

// WithOctaveWidth sets the width of the octave-weighting dome in octaves.
// Zero disables octave weighting entirely.
func WithOctaveWidth(oct float64) ChromaOption {
	return func(c *chromaConfig) { c.octaveWidth = oct }
}

// WithChromaNorm sets the per-column normalization order.
func WithChromaNorm(p float64) ChromaOption {
	return func(c *chromaConfig) { c.norm = p }
}

// WithChromaBaseC aligns row 0 to pitch class C when set, or to pitch
// class A when cleared. Defaults to C.
func WithChromaBaseC(baseC bool) ChromaOption {
	return func(c *chromaConfig) { c.baseC = baseC }
}

// Chroma builds a chromagram filterbank over linear FFT bins: Gaussian
// bumps around each pitch class, optionally weighted by a broad Gaussian
// dome centered on the given octave. The result has shape
// (nChroma, 1+nFFT/2).
func Chroma(sampleRate float64, nFFT int, opts ...ChromaOption) (*mat.Dense, error) {
	cfg := defaultChromaConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if sampleRate <= 0 {
		return nil, paramErrorf("sample rate must be positive: %g", sampleRate)
	}

	if nFFT <= 0 {
		return nil, paramErrorf("FFT size must be positive: %d", nFFT)
	}

	if cfg.nChroma <= 0 {
		return nil, paramErrorf("chroma bin count must be positive: %d", cfg.nChroma)
	}

	if cfg.a440 <= 0 {
		return nil, paramErrorf("tuning frequency must be positive: %g", cfg.a440)
	}

	if cfg.norm <= 0 {
		return nil, paramErrorf("norm order must be positive: %g", cfg.norm)
	}

	nc := float64(cfg.nChroma)

	// Fractional chroma bin of every FFT bin except DC.
	frqBins := make([]float64, nFFT)
	for i := 1; i < nFFT; i++ {
		hz := float64(i) * sampleRate / float64(nFFT)
		frqBins[i] = nc * pitch.HzToOcts(hz, cfg.a440)
	}

	// Make up a value for the DC bin: 1.5 octaves below bin 1, so its
	// chroma is half rotated and its width broad.
	frqBins[0] = frqBins[1] - 1.5*nc

	binWidths := make([]float64, nFFT)
	for i := 0; i < nFFT-1; i++ {
		binWidths[i] = math.Max(frqBins[i+1]-frqBins[i], 1)
	}

	binWidths[nFFT-1] = 1

	full := mat.NewDense(cfg.nChroma, nFFT, nil)

	half := math.Round(nc / 2)

	for r := 0; r < cfg.nChroma; r++ {
		for c := 0; c < nFFT; c++ {
			// Distance in chroma bins, folded into [-nChroma/2, nChroma/2).
			d := frqBins[c] - float64(r)
			d = math.Mod(d+half+10*nc, nc) - half

			// Doubled distance narrows the bumps.
			v := math.Exp(-0.5 * math.Pow(2*d/binWidths[c], 2))
			full.Set(r, c, v)
		}
	}

	normalizeColumns(full, cfg.norm)

	if cfg.octaveWidth > 0 {
		for c := 0; c < nFFT; c++ {
			oct := frqBins[c]/nc - cfg.centerOctave
			dome := math.Exp(-0.5 * math.Pow(oct/cfg.octaveWidth, 2))

			for r := 0; r < cfg.nChroma; r++ {
				full.Set(r, c, full.At(r, c)*dome)
			}
		}
	}

	if cfg.baseC {
		// A-to-C realignment: three semitones, scaled to the chroma
		// resolution.
		rollRowsUp(full, 3*(cfg.nChroma/12))
	}

	// Keep only the non-negative-frequency columns.
	out := mat.NewDense(cfg.nChroma, 1+nFFT/2, nil)
	out.Copy(full.Slice(0, cfg.nChroma, 0, 1+nFFT/2))

	return out, nil
}

// normalizeColumns scales each column to unit p-norm, leaving all-zero
// columns untouched.
func normalizeColumns(m *mat.Dense, p float64) {
	rows, cols := m.Dims()

	for c := 0; c < cols; c++ {
		sum := 0.0
		for r := 0; r < rows; r++ {
			sum += math.Pow(math.Abs(m.At(r, c)), p)
		}

		if sum <= 0 {
			continue
		}

		scale := 1 / math.Pow(sum, 1/p)
		for r := 0; r < rows; r++ {
			m.Set(r, c, m.At(r, c)*scale)
		}
	}
}

// rollRowsUp rotates the rows of m upward by k positions.
func rollRowsUp(m *mat.Dense, k int) {
	rows, cols := m.Dims()
	k = ((k % rows) + rows) % rows

	if k == 0 {
		return
	}

	tmp := mat.DenseCopyOf(m)
	for r := 0; r < rows; r++ {
		src := (r + k) % rows
		for c := 0; c < cols; c++ {
			m.Set(r, c, tmp.At(src, c))
		}
	}
}
