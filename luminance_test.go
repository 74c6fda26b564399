package dicemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLuma(t *testing.T) {
	assert.InDelta(t, 255, Luma(255, 255, 255), 1e-9)
	assert.InDelta(t, 0, Luma(0, 0, 0), 1e-9)
	assert.InDelta(t, 0.2126*255, Luma(255, 0, 0), 1e-9)
	assert.InDelta(t, 0.7152*255, Luma(0, 255, 0), 1e-9)
	assert.InDelta(t, 0.0722*255, Luma(0, 0, 255), 1e-9)
}

func TestAdjustGrayNeutral(t *testing.T) {
	for gray := 0.0; gray <= 255; gray += 17 {
		assert.InDelta(t, gray, AdjustGray(gray, DefaultBrightness, DefaultContrast), 1e-9)
	}
}

func TestAdjustGrayBrightness(t *testing.T) {
	assert.InDelta(t, 200, AdjustGray(100, 100, DefaultContrast), 1e-9)
	assert.InDelta(t, 0, AdjustGray(100, 0, DefaultContrast), 1e-9)
	assert.InDelta(t, 255, AdjustGray(250, 60, DefaultContrast), 1e-9)
}

func TestAdjustGrayContrast(t *testing.T) {
	// lowest contrast pulls values towards the middle
	factor := (259.0 * 155) / (255.0 * 359)
	assert.InDelta(t, 128+127*factor, AdjustGray(255, DefaultBrightness, 0), 1e-9)

	// highest contrast pushes values away from the middle and clamps
	assert.InDelta(t, 255, AdjustGray(200, DefaultBrightness, MaxContrast), 1e-9)
	assert.InDelta(t, 0, AdjustGray(50, DefaultBrightness, MaxContrast), 1e-9)
}

func TestAdjustGrayOrder(t *testing.T) {
	// brightness +20 is applied before contrast factor 1.482
	factor := (259.0 * 305) / (255.0 * 209)
	brightnessFirst := 128 + (120-128)*factor
	contrastFirst := 128 + (100-128)*factor + 20

	got := AdjustGray(100, 60, 75)
	assert.InDelta(t, brightnessFirst, got, 1e-9)
	assert.NotEqual(t, int(contrastFirst), int(got))
}

func TestTransform(t *testing.T) {
	params := DefaultParameters()
	assert.InDelta(t, 128, Transform(128, 128, 128, params), 1e-9)

	params.Brightness = 100
	assert.InDelta(t, 100, Transform(0, 0, 0, params), 1e-9)
}

func TestContrastFromWideScale(t *testing.T) {
	assert.Equal(t, 0, ContrastFromWideScale(0))
	assert.Equal(t, 50, ContrastFromWideScale(125))
	assert.Equal(t, 100, ContrastFromWideScale(MaxWideContrast))
	assert.Equal(t, 20, ContrastFromWideScale(50))
}
