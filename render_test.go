package dicemachine

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolutionMultiplier(t *testing.T) {
	assert.Equal(t, 4, ResolutionMultiplier(0.5))
	assert.Equal(t, 4, ResolutionMultiplier(1))
	assert.Equal(t, 5, ResolutionMultiplier(2.5))
	assert.Equal(t, 6, ResolutionMultiplier(3))
}

func TestComputeLayout(t *testing.T) {
	layout := ComputeLayout(2, 4, RenderOptions{MaxWidth: 400, MaxHeight: 400, Zoom: 1})
	assert.InDelta(t, 100, layout.CellSize, 1e-9)
	assert.Equal(t, 4, layout.Resolution)
	assert.Equal(t, 1600, layout.Width)
	assert.Equal(t, 800, layout.Height)

	layout = ComputeLayout(2, 4, RenderOptions{MaxWidth: 400, MaxHeight: 400, Zoom: 3})
	assert.InDelta(t, 300, layout.CellSize, 1e-9)
	assert.Equal(t, 6, layout.Resolution)
	assert.Equal(t, 7200, layout.Width)
	assert.Equal(t, 3600, layout.Height)

	// height limited viewport and explicit resolution, zoom 0 means 1
	layout = ComputeLayout(10, 2, RenderOptions{MaxWidth: 400, MaxHeight: 100, Resolution: 2})
	assert.InDelta(t, 10, layout.CellSize, 1e-9)
	assert.Equal(t, 2, layout.Resolution)
	assert.Equal(t, 40, layout.Width)
	assert.Equal(t, 200, layout.Height)
}

func TestRenderEmptyGrid(t *testing.T) {
	_, err := Render(nil, ThemeMixed.Style(), DefaultRenderOptions())
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = Render(Grid{{}}, ThemeMixed.Style(), DefaultRenderOptions())
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestRenderNoSurface(t *testing.T) {
	_, err := Render(Grid{{1}}, ThemeMixed.Style(), RenderOptions{MaxWidth: 0, MaxHeight: 100})

	var renderErr *RenderContextError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, 0, renderErr.Width)
}

func TestRenderSurfaceTooLarge(t *testing.T) {
	tests := map[string]RenderOptions{
		"huge viewport":    {MaxWidth: 1e9, MaxHeight: 1e9, Resolution: 4},
		"infinite":         {MaxWidth: math.Inf(1), MaxHeight: math.Inf(1)},
		"width over limit": {MaxWidth: 10000, MaxHeight: 2100, Resolution: 4},
		"high resolution":  {MaxWidth: 2, MaxHeight: 1, Resolution: MaxSurfaceSide},
	}

	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			img, err := Render(Grid{{1, 2}}, ThemeMixed.Style(), opts)
			assert.Nil(t, img)

			var renderErr *RenderContextError
			require.True(t, errors.As(err, &renderErr))
		})
	}
}

func TestRenderMaxZoomOverflowsDefaultViewport(t *testing.T) {
	grid := SampleGrid(150, 150)
	opts := RenderOptions{MaxWidth: 800, MaxHeight: 600, Zoom: MaxZoom}

	layout := ComputeLayout(grid.Rows(), grid.Cols(), opts)
	assert.Equal(t, 30000, layout.Width)

	_, err := Render(grid, ThemeMixed.Style(), opts)
	var renderErr *RenderContextError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, 30000, renderErr.Height)
}

func TestCheckSurface(t *testing.T) {
	assert.NoError(t, checkSurface(1, 1))
	assert.NoError(t, checkSurface(MaxSurfaceSide, MaxSurfaceSide))
	assert.Error(t, checkSurface(MaxSurfaceSide+1, 1))
	assert.Error(t, checkSurface(0.4, 10))
	assert.Error(t, checkSurface(math.NaN(), 10))
}

func TestRenderCellWithoutPips(t *testing.T) {
	style := ThemeMixed.Style()
	style.ShowPips = false
	opts := RenderOptions{Theme: ThemeBlack, MaxWidth: 10, MaxHeight: 10, Zoom: 1, Resolution: 10}

	img, err := Render(Grid{{4}}, style, opts)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	// the inset leaves a seam of background around the cell
	assert.Equal(t, color.RGBA{0x11, 0x11, 0x11, 0xff}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0x88, 0x88, 0x88, 0xff}, img.RGBAAt(50, 50))
}

func TestRenderPips(t *testing.T) {
	style := ThemeMixed.Style()
	opts := RenderOptions{Theme: ThemeMixed, MaxWidth: 10, MaxHeight: 10, Zoom: 1, Resolution: 10}

	black := color.RGBA{0, 0, 0, 0xff}
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}

	img, err := Render(Grid{{1}}, style, opts)
	require.NoError(t, err)
	assert.Equal(t, black, img.RGBAAt(50, 50))
	assert.Equal(t, white, img.RGBAAt(20, 20))

	img, err = Render(Grid{{2}}, style, opts)
	require.NoError(t, err)
	assert.Equal(t, black, img.RGBAAt(20, 20))
	assert.Equal(t, black, img.RGBAAt(80, 80))
	assert.Equal(t, color.RGBA{0xdd, 0xdd, 0xdd, 0xff}, img.RGBAAt(80, 20))

	// dark fills get white pips
	img, err = Render(Grid{{6}}, style, opts)
	require.NoError(t, err)
	assert.Equal(t, white, img.RGBAAt(20, 20))
	assert.Equal(t, white, img.RGBAAt(20, 50))
	assert.Equal(t, color.RGBA{0x22, 0x22, 0x22, 0xff}, img.RGBAAt(50, 50))
}

func TestRenderSmallCellsSkipPips(t *testing.T) {
	opts := RenderOptions{Theme: ThemeMixed, MaxWidth: 4, MaxHeight: 4, Zoom: 1, Resolution: 25}

	img, err := Render(Grid{{1}}, ThemeMixed.Style(), opts)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, img.RGBAAt(50, 50))
}

func TestRenderGridLayout(t *testing.T) {
	style := ThemeMixed.Style()
	style.ShowPips = false
	opts := RenderOptions{Theme: ThemeWhite, MaxWidth: 30, MaxHeight: 20, Zoom: 1, Resolution: 4}

	img, err := Render(Grid{{1, 3, 5}, {2, 4, 6}}, style, opts)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())

	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			face := []int{1, 3, 5, 2, 4, 6}[row*3+col]
			assert.Equal(t, style.Color(face), img.RGBAAt(col*40+20, row*40+20), "face %d", face)
		}
	}
}

func TestPipPositions(t *testing.T) {
	for face := MinFace; face <= MaxFace; face++ {
		assert.Len(t, pipPositions(face), face)
	}
	assert.Empty(t, pipPositions(0))
	assert.Empty(t, pipPositions(7))
}
