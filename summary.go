package dicemachine

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultDiceSizeMM is the edge length of a standard die.
	DefaultDiceSizeMM = 16.0
	// DefaultDicePrice is the default price of a single die.
	DefaultDicePrice = 0.10

	dicePlacedPerMinute = 10
)

// SummaryOptions describe the physical dice a mosaic is built from.
type SummaryOptions struct {
	DiceSizeMM float64
	DicePrice  float64
}

// Summary describes the material needed to build a mosaic.
type Summary struct {
	Width      int
	Height     int
	Total      int
	Counts     [MaxFace + 1]int // indexed by face value
	WhiteDice  int              // faces showing a single pip
	BlackDice  int              // faces showing six pips
	MeanFace   float64
	StdDevFace float64

	WidthCM      float64
	HeightCM     float64
	Cost         float64
	AssemblyTime time.Duration
}

// Summarize counts the dice of a grid and estimates size, cost and assembly time.
func Summarize(grid Grid, opts SummaryOptions) Summary {
	counts := grid.Counts()
	s := Summary{
		Width:     grid.Cols(),
		Height:    grid.Rows(),
		Total:     grid.Rows() * grid.Cols(),
		Counts:    counts,
		WhiteDice: counts[MinFace],
		BlackDice: counts[MaxFace],
	}

	faces := make([]float64, 0, MaxFace)
	weights := make([]float64, 0, MaxFace)
	for face := MinFace; face <= MaxFace; face++ {
		faces = append(faces, float64(face))
		weights = append(weights, float64(counts[face]))
	}
	if s.Total > 0 {
		s.MeanFace, s.StdDevFace = stat.PopMeanStdDev(faces, weights)
	}

	s.WidthCM = float64(s.Width) * opts.DiceSizeMM / 10
	s.HeightCM = float64(s.Height) * opts.DiceSizeMM / 10
	s.Cost = float64(s.Total) * opts.DicePrice
	s.AssemblyTime = time.Duration(s.Total/dicePlacedPerMinute) * time.Minute
	return s
}
