package dicemachine

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	chromath "github.com/jkl1337/go-chromath"
	"github.com/jkl1337/go-chromath/deltae"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme selects the dice set a mosaic is built from.
type Theme string

// Supported themes.
const (
	ThemeMixed Theme = "mixed"
	ThemeBlack Theme = "black"
	ThemeWhite Theme = "white"
)

var (
	backgroundBlack   = color.RGBA{0x11, 0x11, 0x11, 0xff}
	backgroundWhite   = color.RGBA{0xf8, 0xf8, 0xf8, 0xff}
	backgroundDefault = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// ParseTheme parses a theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeMixed, ThemeBlack, ThemeWhite:
		return t, nil
	case "":
		return ThemeMixed, nil
	default:
		return "", fmt.Errorf("unsupported theme %q", s)
	}
}

// Background returns the canvas fill color of the theme.
func (t Theme) Background() color.RGBA {
	switch t {
	case ThemeBlack:
		return backgroundBlack
	case ThemeWhite:
		return backgroundWhite
	default:
		return backgroundDefault
	}
}

// Inverts reports whether grids for this theme are processed with inverted faces.
func (t Theme) Inverts() bool {
	return t == ThemeBlack
}

// Style returns the preset face style of the theme.
func (t Theme) Style() FaceStyle {
	switch t {
	case ThemeBlack:
		return mustFaceStyle("#222222", "#1A1A1A", "#151515", "#101010", "#080808", "#000000")
	case ThemeWhite:
		return mustFaceStyle("#FFFFFF", "#F5F5F5", "#EEEEEE", "#E8E8E8", "#E0E0E0", "#D8D8D8")
	default:
		return mustFaceStyle("#FFFFFF", "#DDDDDD", "#BBBBBB", "#888888", "#555555", "#222222")
	}
}

// FaceStyle maps every face value to its display color. It only affects rendering.
type FaceStyle struct {
	Colors   [MaxFace + 1]color.RGBA // indexed by face value, index 0 is unused
	ShowPips bool
}

// ParseFaceColors parses six hex colors for the faces 1 to 6.
func ParseFaceColors(hexColors []string) (FaceStyle, error) {
	var style FaceStyle
	if len(hexColors) != MaxFace {
		return style, fmt.Errorf("expected %d face colors, got %d", MaxFace, len(hexColors))
	}

	for i, s := range hexColors {
		c, err := colorful.Hex(strings.TrimSpace(s))
		if err != nil {
			return style, fmt.Errorf("parsing color of face %d: %w", i+1, err)
		}
		r, g, b := c.RGB255()
		style.Colors[i+1] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return style, nil
}

func mustFaceStyle(hexColors ...string) FaceStyle {
	style, err := ParseFaceColors(hexColors)
	if err != nil {
		panic(err)
	}
	style.ShowPips = true
	return style
}

// Color returns the fill color of a face, unknown faces are white.
func (s FaceStyle) Color(face int) color.RGBA {
	if face < MinFace || face > MaxFace {
		return backgroundDefault
	}
	return s.Colors[face]
}

// faceLabs converts the face colors to CIE Lab.
func (s FaceStyle) faceLabs() []chromath.Lab {
	labTransformer := chromath.NewLabTransformer(&chromath.IlluminantRefD50)
	rgbTransformer := chromath.NewRGBTransformer(&chromath.SpaceSRGB, &chromath.AdaptationBradford,
		&chromath.IlluminantRefD50, &chromath.Scaler8bClamping, 1.0, nil)

	labs := make([]chromath.Lab, 0, MaxFace)
	for face := MinFace; face <= MaxFace; face++ {
		c := s.Colors[face]
		rgb := chromath.RGB{float64(c.R), float64(c.G), float64(c.B)}
		xyz := rgbTransformer.Convert(rgb)
		labs = append(labs, labTransformer.Invert(xyz))
	}
	return labs
}

// LightnessOrdered reports whether the face colors get darker or stay equal
// from face 1 to face 6, which is what the quantizer assumes.
func (s FaceStyle) LightnessOrdered() bool {
	labs := s.faceLabs()
	for i := 1; i < len(labs); i++ {
		if labs[i][0] > labs[i-1][0]+0.5 { // tolerate rounding of L*
			return false
		}
	}
	return true
}

// MinFaceDistance returns the smallest CIEDE2000 color difference between
// two neighboring faces.
func (s FaceStyle) MinFaceDistance() float64 {
	labs := s.faceLabs()
	minDistance := math.Inf(1)
	for i := 1; i < len(labs); i++ {
		distance := deltae.CIE2000(labs[i-1], labs[i], &deltae.KLChDefault)
		minDistance = math.Min(minDistance, distance)
	}
	return minDistance
}

// pipColor returns black for light fills and white for dark fills.
func pipColor(fill color.RGBA) color.RGBA {
	brightness := float64(fill.R)*0.299 + float64(fill.G)*0.587 + float64(fill.B)*0.114
	if brightness > 128 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}
