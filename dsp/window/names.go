package window

import "fmt"

// Generator produces window coefficients for an arbitrary length. It is the
// escape hatch for window shapes outside the [Type] enum; anything returned
// by it is consumed exactly like [Generate] output.
type Generator func(length int) []float64

// Warning is a structured non-fatal diagnostic. It is returned instead of an
// error when a lookup falls back to a safe default.
type Warning struct {
	Message string
}

func (w *Warning) String() string {
	if w == nil {
		return ""
	}

	return w.Message
}

// bandwidthRefLength is the window length used for numerical bandwidth
// estimation. Long enough that the ENBW has converged to 4-5 digits.
const bandwidthRefLength = 1000

var typesByName = map[string]Type{
	"rectangular":    TypeRectangular,
	"boxcar":         TypeRectangular,
	"hann":           TypeHann,
	"hanning":        TypeHann,
	"hamming":        TypeHamming,
	"blackman":       TypeBlackman,
	"blackmanharris": TypeBlackmanHarris,
	"nuttall":        TypeNuttall,
	"flattop":        TypeFlatTop,
	"triangle":       TypeTriangle,
	"triang":         TypeTriangle,
	"bartlett":       TypeBartlett,
	"barthann":       TypeBartHann,
	"bohman":         TypeBohman,
	"parzen":         TypeParzen,
	"cosine":         TypeCosine,
	"welch":          TypeWelch,
	"lanczos":        TypeLanczos,
	"gauss":          TypeGauss,
	"gaussian":       TypeGauss,
	"kaiser":         TypeKaiser,
	"tukey":          TypeTukey,
}

var canonicalNames = map[Type]string{
	TypeRectangular:    "rectangular",
	TypeHann:           "hann",
	TypeHamming:        "hamming",
	TypeBlackman:       "blackman",
	TypeBlackmanHarris: "blackmanharris",
	TypeNuttall:        "nuttall",
	TypeFlatTop:        "flattop",
	TypeTriangle:       "triangle",
	TypeBartlett:       "bartlett",
	TypeBartHann:       "barthann",
	TypeBohman:         "bohman",
	TypeParzen:         "parzen",
	TypeCosine:         "cosine",
	TypeWelch:          "welch",
	TypeLanczos:        "lanczos",
	TypeGauss:          "gauss",
	TypeKaiser:         "kaiser",
	TypeTukey:          "tukey",
}

// ByName resolves a window name (or alias) to its type.
func ByName(name string) (Type, bool) {
	t, ok := typesByName[name]
	return t, ok
}

// Name returns the canonical name of a window type.
func Name(t Type) string {
	if n, ok := canonicalNames[t]; ok {
		return n
	}

	return "unknown"
}

// Bandwidth returns the equivalent noise bandwidth of the named window, in
// bins. Unknown names do not fail: they fall back to a bandwidth of 1
// (rectangular) and return a non-nil Warning describing the fallback.
func Bandwidth(name string) (float64, *Warning) {
	t, ok := ByName(name)
	if !ok {
		return 1, &Warning{
			Message: fmt.Sprintf("unknown window function %q, assuming bandwidth 1", name),
		}
	}

	return TypeBandwidth(t), nil
}

// TypeBandwidth returns the equivalent noise bandwidth of a window type, in
// bins, estimated numerically from a long reference window.
func TypeBandwidth(t Type) float64 {
	return MeasureBandwidth(Generate(t, bandwidthRefLength))
}

// MeasureBandwidth returns the equivalent noise bandwidth, in bins, of
// explicit window coefficients. This is the callable-variant counterpart of
// [Bandwidth] for coefficients produced by a [Generator].
func MeasureBandwidth(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 1
	}

	return Analyze(coeffs).ENBW
}
