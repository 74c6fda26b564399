package dicemachine

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"go.uber.org/zap"
)

// Processor converts images to dice grids.
type Processor struct {
	logger *zap.Logger
}

// NewProcessor returns a processor that logs to the given logger.
// A nil logger disables logging.
func NewProcessor(logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{logger: logger}
}

// ProcessImage decodes the image and converts it to a dice grid.
func ProcessImage(r io.Reader, mode SizingMode, params Parameters) (Grid, error) {
	return NewProcessor(nil).Process(r, mode, params)
}

// Process decodes the image and converts it to a dice grid.
func (p *Processor) Process(r io.Reader, mode SizingMode, params Parameters) (Grid, error) {
	inputImage, err := DecodeImage(r)
	if err != nil {
		return nil, err
	}
	return p.ProcessDecoded(inputImage, mode, params)
}

// ProcessDecoded converts an already decoded image to a dice grid.
func (p *Processor) ProcessDecoded(inputImage image.Image, mode SizingMode, params Parameters) (Grid, error) {
	startTime := time.Now()

	imageBounds := inputImage.Bounds()
	if imageBounds.Empty() {
		return nil, &DecodeError{Err: errors.New("image has no pixels")}
	}

	aspect := float64(imageBounds.Dx()) / float64(imageBounds.Dy())
	width, height := Resolve(mode, aspect)
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}

	p.logger.Debug("Grid size resolved",
		zap.Stringer("mode", mode),
		zap.Float64("aspect", aspect),
		zap.Int("width", width),
		zap.Int("height", height))

	buf := supersampledLuminance(inputImage, width, height, params)
	defer buf.release()

	final := downsampleGray(buf, width, height)

	grid := make(Grid, height)
	for y := range grid {
		row := make([]int, width)
		for x := range row {
			gray := final.Pix[y*final.Stride+x*4]
			row[x] = Quantize(float64(gray), params.Invert)
		}
		grid[y] = row
	}

	p.logger.Debug("Image processed",
		zap.Int("contrast", params.Contrast),
		zap.Int("brightness", params.Brightness),
		zap.Bool("invert", params.Invert),
		zap.Duration("duration", time.Since(startTime)))

	return grid, nil
}
