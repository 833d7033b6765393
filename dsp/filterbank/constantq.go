package filterbank

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-filterbank/dsp/window"
)

// defaultCQFMin is the lowest default center frequency, MIDI note 24
// (32.70 Hz).
const defaultCQFMin = 32.70319566257483

type cqConfig struct {
	fmin          float64
	nBins         int
	binsPerOctave int
	tuning        float64
	resolution    float64
	padFFT        bool
	norm          float64
	windowType    window.Type
	windowFn      window.Generator
}

func defaultCQConfig() cqConfig {
	return cqConfig{
		fmin:          defaultCQFMin,
		nBins:         84,
		binsPerOctave: 12,
		resolution:    2,
		padFFT:        true,
		norm:          1,
		windowType:    window.TypeHann,
	}
}

// CQOption configures a constant-Q basis.
type CQOption func(*cqConfig)

// WithFMin sets the center frequency of the lowest bin in Hz.
func WithFMin(hz float64) CQOption {
	return func(c *cqConfig) { c.fmin = hz }
}

// WithBins sets the number of kernels to generate.
func WithBins(n int) CQOption {
	return func(c *cqConfig) { c.nBins = n }
}

// WithBinsPerOctave sets the pitch spacing in bins per frequency doubling.
func WithBinsPerOctave(n int) CQOption {
	return func(c *cqConfig) { c.binsPerOctave = n }
}

// WithTuning sets a fractional-bin tuning offset applied to every
// center frequency.
func WithTuning(bins float64) CQOption {
	return func(c *cqConfig) { c.tuning = bins }
}

// WithResolution scales the kernel time support (the Q factor).
// Larger values trade time resolution for frequency resolution.
func WithResolution(r float64) CQOption {
	return func(c *cqConfig) { c.resolution = r }
}

// WithPadFFT controls zero-padding of the shared kernel width to the next
// power of two. Enabled by default.
func WithPadFFT(pad bool) CQOption {
	return func(c *cqConfig) { c.padFFT = pad }
}

// WithNorm sets the norm order used to normalize each kernel (1 for L1,
// 2 for L2). Must be positive.
func WithNorm(p float64) CQOption {
	return func(c *cqConfig) { c.norm = p }
}

// WithWindow selects the taper applied to each kernel. Defaults to Hann.
func WithWindow(t window.Type) CQOption {
	return func(c *cqConfig) {
		c.windowType = t
		c.windowFn = nil
	}
}

// WithWindowFunc tapers each kernel with coefficients from an arbitrary
// generator instead of a named window type.
func WithWindowFunc(fn window.Generator) CQOption {
	return func(c *cqConfig) { c.windowFn = fn }
}

// CQBasis is an immutable set of constant-Q kernels sharing a common
// padded width.
type CQBasis struct {
	kernels    [][]complex128
	lengths    []int
	freqs      []float64
	width      int
	sampleRate float64
	q          float64
}

// ConstantQ builds a constant-Q kernel basis for the given sample rate.
//
// The returned basis holds one complex kernel per bin, each a windowed
// complex exponential at the bin center frequency, normalized and
// center-padded to the shared width. Low bins get long kernels, high bins
// short ones, keeping the frequency-to-bandwidth ratio constant.
func ConstantQ(sampleRate float64, opts ...CQOption) (*CQBasis, error) {
	cfg := defaultCQConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateCQ(sampleRate, cfg); err != nil {
		return nil, err
	}

	bpo := float64(cfg.binsPerOctave)

	// Tuning is a multiplicative correction on fmin, so every center
	// frequency shifts by the same fractional-bin offset.
	fmin := cfg.fmin * math.Pow(2, cfg.tuning/bpo)
	q := cfg.resolution / (math.Pow(2, 1/bpo) - 1)

	freqs := make([]float64, cfg.nBins)
	for i := range freqs {
		freqs[i] = fmin * math.Pow(2, float64(i)/bpo)
	}

	// The top filter's passband must stay below Nyquist, accounting for
	// the window's bandwidth.
	enbw := cfg.windowBandwidth()

	fMax := freqs[cfg.nBins-1]
	if fMax*(1+0.5*enbw/q) > sampleRate/2 {
		return nil, paramErrorf("filter pass-band lies beyond Nyquist: top bin %.2f Hz at sample rate %.0f", fMax, sampleRate)
	}

	lengths := make([]int, cfg.nBins)
	width := 0

	for i, f := range freqs {
		lengths[i] = int(math.Ceil(q * sampleRate / f))
		if lengths[i] > width {
			width = lengths[i]
		}
	}

	if cfg.padFFT {
		width = nextPowerOfTwo(width)
	}

	kernels := make([][]complex128, cfg.nBins)
	for i, f := range freqs {
		kernels[i] = buildKernel(f, sampleRate, lengths[i], width, cfg)
	}

	return &CQBasis{
		kernels:    kernels,
		lengths:    lengths,
		freqs:      freqs,
		width:      width,
		sampleRate: sampleRate,
		q:          q,
	}, nil
}

func validateCQ(sampleRate float64, cfg cqConfig) error {
	if sampleRate <= 0 {
		return paramErrorf("sample rate must be positive: %g", sampleRate)
	}

	if cfg.fmin <= 0 {
		return paramErrorf("fmin must be positive: %g", cfg.fmin)
	}

	if cfg.fmin >= sampleRate/2 {
		return paramErrorf("fmin must lie below Nyquist: %g >= %g", cfg.fmin, sampleRate/2)
	}

	if cfg.nBins <= 0 {
		return paramErrorf("bin count must be positive: %d", cfg.nBins)
	}

	if cfg.binsPerOctave <= 0 {
		return paramErrorf("bins per octave must be positive: %d", cfg.binsPerOctave)
	}

	if cfg.resolution <= 0 {
		return paramErrorf("resolution must be positive: %g", cfg.resolution)
	}

	if cfg.norm <= 0 {
		return paramErrorf("norm order must be positive: %g", cfg.norm)
	}

	return nil
}

func (c cqConfig) windowBandwidth() float64 {
	if c.windowFn != nil {
		return window.MeasureBandwidth(c.windowFn(1000))
	}

	return window.TypeBandwidth(c.windowType)
}

func (c cqConfig) windowCoeffs(n int) []float64 {
	if c.windowFn != nil {
		return c.windowFn(n)
	}

	return window.Generate(c.windowType, n)
}

// buildKernel generates one windowed, normalized complex exponential of
// the given support length, center-padded to width.
func buildKernel(freq, sampleRate float64, n, width int, cfg cqConfig) []complex128 {
	re := make([]float64, n)
	im := make([]float64, n)

	step := 2 * math.Pi * freq / sampleRate
	for t := 0; t < n; t++ {
		phase := step * float64(t)
		re[t] = math.Cos(phase)
		im[t] = math.Sin(phase)
	}

	coeffs := cfg.windowCoeffs(n)
	if len(coeffs) == n {
		vecmath.MulBlockInPlace(re, coeffs)
		vecmath.MulBlockInPlace(im, coeffs)
	}

	mags := make([]float64, n)
	vecmath.Magnitude(mags, re, im)

	sum := 0.0
	for _, m := range mags {
		sum += math.Pow(m, cfg.norm)
	}

	out := make([]complex128, width)

	scale := 1.0
	if sum > 0 {
		scale = 1 / math.Pow(sum, 1/cfg.norm)
	}

	offset := (width - n) / 2
	for t := 0; t < n; t++ {
		out[offset+t] = complex(re[t]*scale, im[t]*scale)
	}

	return out
}

// NumBins returns the number of kernels in the basis.
func (b *CQBasis) NumBins() int { return len(b.kernels) }

// Width returns the shared (padded) kernel length.
func (b *CQBasis) Width() int { return b.width }

// SampleRate returns the sample rate the basis was built for.
func (b *CQBasis) SampleRate() float64 { return b.sampleRate }

// Q returns the ratio of center frequency to bandwidth shared by all bins.
func (b *CQBasis) Q() float64 { return b.q }

// Kernels returns the kernel matrix, one row per bin. The matrix is shared,
// not copied; callers must not modify it.
func (b *CQBasis) Kernels() [][]complex128 { return b.kernels }

// Kernel returns the padded kernel of bin i.
func (b *CQBasis) Kernel(i int) []complex128 { return b.kernels[i] }

// Lengths returns the unpadded support length of each kernel.
func (b *CQBasis) Lengths() []int { return b.lengths }

// Frequencies returns the center frequency of each bin in Hz.
func (b *CQBasis) Frequencies() []float64 { return b.freqs }

// Spectral returns the forward FFT of every kernel, ready for
// frequency-domain application by a convolution engine. The kernel width
// must be FFT-compatible; bases built with pad_fft enabled always are.
func (b *CQBasis) Spectral() ([][]complex128, error) {
	plan, err := algofft.NewPlan64(b.width)
	if err != nil {
		return nil, err
	}

	out := make([][]complex128, len(b.kernels))
	for i, k := range b.kernels {
		row := make([]complex128, b.width)
		if err := plan.Forward(row, k); err != nil {
			return nil, err
		}

		out[i] = row
	}

	return out, nil
}

// nextPowerOfTwo returns the next power of 2 >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
