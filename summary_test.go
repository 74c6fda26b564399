package dicemachine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	opts := SummaryOptions{DiceSizeMM: DefaultDiceSizeMM, DicePrice: DefaultDicePrice}
	s := Summarize(Grid{{1, 2}, {6, 6}}, opts)

	assert.Equal(t, 2, s.Width)
	assert.Equal(t, 2, s.Height)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.WhiteDice)
	assert.Equal(t, 2, s.BlackDice)
	assert.Equal(t, 1, s.Counts[2])
	assert.InDelta(t, 3.75, s.MeanFace, 1e-9)
	assert.Greater(t, s.StdDevFace, 0.0)
	assert.InDelta(t, 3.2, s.WidthCM, 1e-9)
	assert.InDelta(t, 3.2, s.HeightCM, 1e-9)
	assert.InDelta(t, 0.4, s.Cost, 1e-9)
	assert.Equal(t, time.Duration(0), s.AssemblyTime)
}

func TestSummarizeAssemblyTime(t *testing.T) {
	grid := make(Grid, 30)
	for i := range grid {
		grid[i] = make([]int, 40)
		for j := range grid[i] {
			grid[i][j] = 3
		}
	}

	s := Summarize(grid, SummaryOptions{DiceSizeMM: 16, DicePrice: 0.05})
	assert.Equal(t, 1200, s.Total)
	assert.Equal(t, 2*time.Hour, s.AssemblyTime)
	assert.InDelta(t, 60, s.Cost, 1e-9)
	assert.InDelta(t, 3, s.MeanFace, 1e-9)
	assert.InDelta(t, 0, s.StdDevFace, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, SummaryOptions{})
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.MeanFace)
}
