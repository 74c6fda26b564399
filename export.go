package dicemachine

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// Export file names and scale factors.
const (
	ImageFileName     = "dice-mosaic.png"
	CSVFileName       = "dice-mosaic.csv"
	MatrixCSVFileName = "dice-mosaic-grid.csv"

	// ExportScaleCalculator is the export upscale of the dice calculator.
	ExportScaleCalculator = 2
	// ExportScalePreview is the export upscale of the mosaic preview.
	ExportScalePreview = 4
)

// UpscaleForExport re-rasterizes a rendered mosaic at a fixed scale factor,
// independent of the resolution it was rendered at.
func UpscaleForExport(img image.Image, scale int) (*image.RGBA, error) {
	bounds := img.Bounds()
	if scale < 1 {
		scale = 1
	}

	width := float64(bounds.Dx()) * float64(scale)
	height := float64(bounds.Dy()) * float64(scale)
	if err := checkSurface(width, height); err != nil {
		return nil, err
	}

	dstRect := image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale)
	dst := image.NewRGBA(dstRect)
	if scale == 1 {
		draw.Draw(dst, dstRect, img, bounds.Min, draw.Src)
		return dst, nil
	}

	draw.CatmullRom.Scale(dst, dstRect, img, bounds, draw.Src, nil)
	return dst, nil
}

// WritePNG upscales the mosaic and encodes it as PNG.
func WritePNG(w io.Writer, img image.Image, scale int) error {
	upscaled, err := UpscaleForExport(img, scale)
	if err != nil {
		return err
	}

	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(w, upscaled); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// WritePNGFile writes the upscaled mosaic to a PNG file.
func WritePNGFile(fileName string, img image.Image, scale int) error {
	imageWriter, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}

	if err := WritePNG(imageWriter, img, scale); err != nil {
		_ = imageWriter.Close()
		return err
	}
	return imageWriter.Close()
}
