package filterbank

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-filterbank/dsp/pitch"
)

type melConfig struct {
	nMels int
	fmin  float64
	fmax  float64
	htk   bool
}

func defaultMelConfig() melConfig {
	return melConfig{
		nMels: 128,
		fmax:  -1, // resolved to Nyquist
	}
}

// MelOption configures a mel filterbank.
type MelOption func(*melConfig)

// WithMelBands sets the number of triangular filters.
func WithMelBands(n int) MelOption {
	return func(c *melConfig) { c.nMels = n }
}

// WithMelRange limits the filterbank to [fmin, fmax] Hz. Without it the
// bank spans 0 Hz to Nyquist.
func WithMelRange(fmin, fmax float64) MelOption {
	return func(c *melConfig) {
		c.fmin = fmin
		c.fmax = fmax
	}
}

// WithHTK selects the HTK mel formula instead of the Slaney convention.
func WithHTK() MelOption {
	return func(c *melConfig) { c.htk = true }
}

// Mel builds a triangular mel filterbank over linear FFT bins with
// Slaney-style area normalization. The result has shape
// (nMels, 1+nFFT/2); multiplying it against a power spectrum yields the
// mel spectrum.
func Mel(sampleRate float64, nFFT int, opts ...MelOption) (*mat.Dense, error) {
	cfg := defaultMelConfig()

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

	if cfg.nMels <= 0 {
		return nil, paramErrorf("mel band count must be positive: %d", cfg.nMels)
	}

	if cfg.fmax < 0 {
		cfg.fmax = sampleRate / 2
	}

	if cfg.fmin < 0 || cfg.fmin >= cfg.fmax {
		return nil, paramErrorf("invalid frequency range: [%g, %g]", cfg.fmin, cfg.fmax)
	}

	nBins := 1 + nFFT/2
	fftFreqs := pitch.FFTFrequencies(sampleRate, nFFT)

	// Band edges: nMels+2 points uniformly spaced on the mel scale.
	melF := pitch.MelFrequencies(cfg.nMels+2, cfg.fmin, cfg.fmax, cfg.htk)

	m := mat.NewDense(cfg.nMels, nBins, nil)

	for i := 0; i < cfg.nMels; i++ {
		lowerWidth := melF[i+1] - melF[i]
		upperWidth := melF[i+2] - melF[i+1]

		// Slaney normalization keeps per-channel energy roughly constant.
		enorm := 2 / (melF[i+2] - melF[i])

		for j := 0; j < nBins; j++ {
			lower := (fftFreqs[j] - melF[i]) / lowerWidth
			upper := (melF[i+2] - fftFreqs[j]) / upperWidth

			w := math.Min(lower, upper)
			if w > 0 {
				m.Set(i, j, w*enorm)
			}
		}
	}

	return m, nil
}
