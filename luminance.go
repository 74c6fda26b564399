package dicemachine

import "math"

const (
	// DefaultContrast is the neutral contrast setting.
	DefaultContrast = 50
	// DefaultBrightness is the neutral brightness setting.
	DefaultBrightness = 50

	// MaxContrast is the upper bound of the canonical contrast scale.
	MaxContrast = 100
	// MaxWideContrast is the upper bound of the extended contrast slider.
	MaxWideContrast = 250
)

// Parameters configure the luminance transformation and quantization of a run.
// Contrast uses the canonical 0-100 scale, brightness is 0-100 centered at 50.
type Parameters struct {
	Contrast   int
	Brightness int
	Invert     bool
}

// DefaultParameters returns neutral processing parameters.
func DefaultParameters() Parameters {
	return Parameters{
		Contrast:   DefaultContrast,
		Brightness: DefaultBrightness,
	}
}

// ContrastFromWideScale converts a contrast value of the 0-250 slider scale
// to the canonical 0-100 scale.
func ContrastFromWideScale(v int) int {
	return round(float64(v) * MaxContrast / MaxWideContrast)
}

// Luma returns the perceptual grayscale value of an RGB sample.
func Luma(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}

// AdjustGray applies brightness and then contrast to a grayscale value.
// The result is clamped to [0, 255].
func AdjustGray(gray float64, brightness, contrast int) float64 {
	offset := float64((brightness - 50) * 2)
	adjusted := clamp255(gray + offset)

	c := float64(contrast*2 - 100)
	factor := (259 * (c + 255)) / (255 * (259 - c))
	return clamp255(factor*(adjusted-128) + 128)
}

// Transform converts an RGB sample to an adjusted grayscale value.
func Transform(r, g, b uint8, params Parameters) float64 {
	return AdjustGray(Luma(r, g, b), params.Brightness, params.Contrast)
}

func clamp255(f float64) float64 {
	return math.Min(255, math.Max(0, f))
}
