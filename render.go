package dicemachine

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

const (
	// DefaultMaxWidth and DefaultMaxHeight bound the mosaic viewport in display units.
	DefaultMaxWidth  = 1200
	DefaultMaxHeight = 900

	minResolution  = 4
	cellInset      = 0.01
	pipMinCellSize = 4
	pipDiameter    = 0.18
	pipPadding     = 0.2
	centerPipScale = 1.2

	// MaxZoom is the largest supported cell zoom.
	MaxZoom = 5
	// MaxSurfaceSide and MaxSurfacePixels bound the drawing surfaces that
	// can be acquired, the same limits browsers apply to canvases.
	MaxSurfaceSide   = 16384
	MaxSurfacePixels = 1 << 28
)

// RenderOptions configure the mosaic viewport.
type RenderOptions struct {
	Theme     Theme
	MaxWidth  float64 // viewport width in display units
	MaxHeight float64 // viewport height in display units
	Zoom      float64 // multiplier on the fitted cell size, 0 means 1
	// Resolution is the number of pixel per display unit.
	// 0 picks max(4, ceil(zoom*2)) to stay crisp when zoomed in.
	Resolution int
}

// DefaultRenderOptions returns options for the default viewport.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Theme:     ThemeMixed,
		MaxWidth:  DefaultMaxWidth,
		MaxHeight: DefaultMaxHeight,
		Zoom:      1,
	}
}

// ResolutionMultiplier returns the pixel per display unit ratio for a zoom level.
func ResolutionMultiplier(zoom float64) int {
	return max(minResolution, int(math.Ceil(zoom*2)))
}

// Layout describes the geometry of a rendered mosaic.
type Layout struct {
	CellSize   float64 // zoomed cell size in display units
	Resolution int
	Width      int // buffer width in pixel
	Height     int // buffer height in pixel
}

// ComputeLayout fits the grid into the viewport of the options.
func ComputeLayout(rows, cols int, opts RenderOptions) Layout {
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	resolution := opts.Resolution
	if resolution <= 0 {
		resolution = ResolutionMultiplier(zoom)
	}

	cellSize := math.Min(opts.MaxWidth/float64(cols), opts.MaxHeight/float64(rows)) * zoom
	scale := cellSize * float64(resolution)
	return Layout{
		CellSize:   cellSize,
		Resolution: resolution,
		Width:      int(math.Round(float64(cols) * scale)),
		Height:     int(math.Round(float64(rows) * scale)),
	}
}

// Render draws the grid as a dice mosaic.
func Render(grid Grid, style FaceStyle, opts RenderOptions) (*image.RGBA, error) {
	if grid.Rows() == 0 || grid.Cols() == 0 {
		return nil, ErrEmptyGrid
	}

	layout := ComputeLayout(grid.Rows(), grid.Cols(), opts)
	scale := layout.CellSize * float64(layout.Resolution)
	if err := checkSurface(float64(grid.Cols())*scale, float64(grid.Rows())*scale); err != nil {
		return nil, err
	}

	outputImage := image.NewRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	dc := gg.NewContextForRGBA(outputImage)
	dc.Scale(float64(layout.Resolution), float64(layout.Resolution))

	size := layout.CellSize
	dc.SetColor(opts.Theme.Background())
	dc.DrawRectangle(0, 0, float64(grid.Cols())*size, float64(grid.Rows())*size)
	dc.Fill()

	padding := size * cellInset
	for row, faces := range grid {
		for col, face := range faces {
			x := float64(col) * size
			y := float64(row) * size

			fill := style.Color(face)
			dc.SetColor(fill)
			dc.DrawRectangle(x+padding, y+padding, size-padding*2, size-padding*2)
			dc.Fill()

			if style.ShowPips && size > pipMinCellSize {
				drawPips(dc, face, x, y, size, pipColor(fill))
			}
		}
	}

	return outputImage, nil
}

// checkSurface returns a RenderContextError if a surface of the given pixel
// size can not be allocated.
func checkSurface(width, height float64) error {
	width, height = math.Round(width), math.Round(height)
	if width >= 1 && height >= 1 &&
		width <= MaxSurfaceSide && height <= MaxSurfaceSide &&
		width*height <= MaxSurfacePixels {
		return nil
	}

	return &RenderContextError{
		Width:  surfaceDimension(width),
		Height: surfaceDimension(height),
	}
}

func surfaceDimension(f float64) int {
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > math.MaxInt32:
		return math.MaxInt32
	default:
		return int(f)
	}
}

// pipPositions returns the pip centers of a face as fractions of the cell size.
func pipPositions(face int) [][2]float64 {
	const (
		near = pipPadding
		mid  = 0.5
		far  = 1 - pipPadding
	)

	switch face {
	case 1:
		return [][2]float64{{mid, mid}}
	case 2:
		return [][2]float64{{near, near}, {far, far}}
	case 3:
		return [][2]float64{{near, near}, {mid, mid}, {far, far}}
	case 4:
		return [][2]float64{{near, near}, {near, far}, {far, near}, {far, far}}
	case 5:
		return [][2]float64{{near, near}, {near, far}, {mid, mid}, {far, near}, {far, far}}
	case 6:
		return [][2]float64{{near, near}, {near, mid}, {near, far}, {far, near}, {far, mid}, {far, far}}
	default:
		return nil
	}
}

func drawPips(dc *gg.Context, face int, x, y, size float64, c color.Color) {
	radius := size * pipDiameter / 2
	if face == 1 {
		radius *= centerPipScale
	}

	dc.SetColor(c)
	for _, pos := range pipPositions(face) {
		dc.DrawCircle(x+pos[0]*size, y+pos[1]*size, radius)
		dc.Fill()
	}
}
