package dicemachine

import (
	"errors"
	"fmt"
)

// ErrEmptyGrid is returned when a grid without rows or columns is rendered or exported.
var ErrEmptyGrid = errors.New("empty dice grid")

// DecodeError is returned when the source bytes can not be decoded as an image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RenderContextError is returned when no drawing surface can be acquired for a render.
type RenderContextError struct {
	Width, Height int
}

func (e *RenderContextError) Error() string {
	return fmt.Sprintf("creating drawing surface of %dx%d pixel", e.Width, e.Height)
}
