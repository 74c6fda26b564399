package dicemachine

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"math"
	"os"
	"sync"

	"github.com/disintegration/imaging"
)

// supersample is the factor the source is rasterized at before the
// luminance transform, relative to the final grid size.
const supersample = 2

var grayBufferPool = sync.Pool{
	New: func() any {
		b := make([]uint8, 0)
		return &b
	},
}

// ReadImageFile reads and decodes the given image file.
func ReadImageFile(fileName string) (image.Image, error) {
	imageReader, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening image file: %w", err)
	}
	defer imageReader.Close()

	return DecodeImage(imageReader)
}

// DecodeImage decodes a JPEG or PNG image.
func DecodeImage(r io.Reader) (image.Image, error) {
	inputImage, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return inputImage, nil
}

// grayBuffer is a pooled grayscale raster of a single processing run.
type grayBuffer struct {
	*image.Gray
	pix *[]uint8
}

func acquireGrayBuffer(width, height int) *grayBuffer {
	pix := grayBufferPool.Get().(*[]uint8)
	size := width * height
	if cap(*pix) < size {
		*pix = make([]uint8, size)
	}
	*pix = (*pix)[:size]

	return &grayBuffer{
		Gray: &image.Gray{
			Pix:    *pix,
			Stride: width,
			Rect:   image.Rect(0, 0, width, height),
		},
		pix: pix,
	}
}

func (b *grayBuffer) release() {
	b.Gray = nil
	grayBufferPool.Put(b.pix)
}

// supersampledLuminance rasterizes the source at twice the grid size and
// stores the adjusted gray value of every pixel in buf.
func supersampledLuminance(source image.Image, width, height int, params Parameters) *grayBuffer {
	raster := imaging.Resize(source, width*supersample, height*supersample, imaging.Lanczos)
	bounds := raster.Bounds()

	buf := acquireGrayBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		src := raster.Pix[y*raster.Stride : y*raster.Stride+bounds.Dx()*4]
		dst := buf.Pix[y*buf.Stride : y*buf.Stride+bounds.Dx()]
		for x := range dst {
			r, g, b := src[x*4], src[x*4+1], src[x*4+2]
			dst[x] = grayByte(Transform(r, g, b, params))
		}
	}
	return buf
}

// grayByte stores a gray value as a sample, halfway values round to even
// like canvas pixel data does.
func grayByte(f float64) uint8 {
	return uint8(math.RoundToEven(clamp255(f)))
}

// downsampleGray averages the supersampled buffer down to the grid size.
func downsampleGray(buf *grayBuffer, width, height int) *image.NRGBA {
	return imaging.Resize(buf.Gray, width, height, imaging.Box)
}
