package dicemachine

// MinFace and MaxFace bound the values of a dice grid.
const (
	MinFace = 1
	MaxFace = 6
)

// faceThresholds holds the exclusive upper gray bound of the faces 6 to 2,
// anything brighter becomes a 1.
var faceThresholds = [...]float64{42, 85, 128, 171, 213}

// Quantize maps a grayscale value to a dice face. Darker values get more pips.
// With invert set the face v is replaced by 7-v.
func Quantize(gray float64, invert bool) int {
	face := MinFace
	for i, threshold := range faceThresholds {
		if gray < threshold {
			face = MaxFace - i
			break
		}
	}

	if invert {
		return MinFace + MaxFace - face
	}
	return face
}
