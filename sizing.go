package dicemachine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	autoTargetCells   = 6000
	autoMinDimension  = 50
	autoMaxDimension  = 150
	autoPortraitRatio = 2
)

// SizingKind selects how the grid dimensions are derived.
type SizingKind int

const (
	// SizingAuto derives the dimensions from the image aspect ratio.
	SizingAuto SizingKind = iota
	// SizingFixed uses a square grid.
	SizingFixed
	// SizingCustom uses independent width and height.
	SizingCustom
)

// SizingMode describes the grid size strategy of a processing run.
type SizingMode struct {
	Kind   SizingKind
	Width  int
	Height int
}

// Auto returns a sizing mode that derives the grid from the image aspect ratio.
func Auto() SizingMode {
	return SizingMode{Kind: SizingAuto}
}

// Fixed returns a sizing mode for a square n x n grid.
func Fixed(n int) SizingMode {
	return SizingMode{Kind: SizingFixed, Width: n, Height: n}
}

// Custom returns a sizing mode with independent width and height.
func Custom(width, height int) SizingMode {
	return SizingMode{Kind: SizingCustom, Width: width, Height: height}
}

func (m SizingMode) String() string {
	switch m.Kind {
	case SizingFixed:
		return strconv.Itoa(m.Width)
	case SizingCustom:
		return fmt.Sprintf("%dx%d", m.Width, m.Height)
	default:
		return "auto"
	}
}

// ParseSizingMode parses "auto", "N" or "WxH".
func ParseSizingMode(s string) (SizingMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return Auto(), nil
	}

	if width, height, ok := strings.Cut(s, "x"); ok {
		w, err := strconv.Atoi(width)
		if err != nil {
			return SizingMode{}, fmt.Errorf("parsing grid width: %w", err)
		}
		h, err := strconv.Atoi(height)
		if err != nil {
			return SizingMode{}, fmt.Errorf("parsing grid height: %w", err)
		}
		if w < 1 || h < 1 {
			return SizingMode{}, fmt.Errorf("grid size %q must be positive", s)
		}
		return Custom(w, h), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return SizingMode{}, fmt.Errorf("parsing grid size: %w", err)
	}
	if n < 1 {
		return SizingMode{}, fmt.Errorf("grid size %q must be positive", s)
	}
	return Fixed(n), nil
}

// Resolve computes the grid width and height for the given image aspect ratio
// (image width / image height). Fixed and custom modes are returned unchanged.
func Resolve(mode SizingMode, aspect float64) (int, int) {
	switch mode.Kind {
	case SizingFixed:
		return mode.Width, mode.Width
	case SizingCustom:
		return mode.Width, mode.Height
	default:
		return resolveAuto(aspect)
	}
}

func resolveAuto(aspect float64) (int, int) {
	width := round(math.Sqrt(autoTargetCells * aspect))
	height := round(float64(width) / aspect)

	// extreme portrait images would produce a degenerate strip
	if height > width*autoPortraitRatio {
		height = width
		width = round(float64(height) * aspect)
	}

	if width > autoMaxDimension {
		width = autoMaxDimension
		height = round(float64(width) / aspect)
	}
	if height > autoMaxDimension {
		height = autoMaxDimension
		width = round(float64(height) * aspect)
	}

	// raising to the minimum does not re-derive the other side
	if width < autoMinDimension {
		width = autoMinDimension
	}
	if height < autoMinDimension {
		height = autoMinDimension
	}
	return width, height
}

func round(f float64) int {
	return int(math.Round(f))
}
