package dicemachine

import (
	"fmt"
	"math"
)

// Grid is a row-major rectangular matrix of dice faces.
// A grid returned by the processor is never modified afterwards, changed
// parameters produce a new grid.
type Grid [][]int

// Rows returns the number of grid rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the number of grid columns.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate checks that the grid is non-empty, rectangular and only contains valid faces.
func (g Grid) Validate() error {
	if g.Rows() == 0 || g.Cols() == 0 {
		return ErrEmptyGrid
	}

	cols := g.Cols()
	for y, row := range g {
		if len(row) != cols {
			return fmt.Errorf("row %d has %d columns, expected %d", y+1, len(row), cols)
		}
		for x, face := range row {
			if face < MinFace || face > MaxFace {
				return fmt.Errorf("cell %d,%d has invalid dice value %d", y+1, x+1, face)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	clone := make(Grid, len(g))
	for i, row := range g {
		clone[i] = append([]int(nil), row...)
	}
	return clone
}

// Counts returns how often each face is used, indexed by the face value.
func (g Grid) Counts() [MaxFace + 1]int {
	var counts [MaxFace + 1]int
	for _, row := range g {
		for _, face := range row {
			if face >= MinFace && face <= MaxFace {
				counts[face]++
			}
		}
	}
	return counts
}

// SampleGrid returns a diagonal gradient pattern of the given size.
func SampleGrid(width, height int) Grid {
	grid := make(Grid, height)
	for y := range grid {
		row := make([]int, width)
		for x := range row {
			face := int(math.Floor(float64(x+y)/float64(width+height)*MaxFace)) + 1
			row[x] = min(MaxFace, max(MinFace, face))
		}
		grid[y] = row
	}
	return grid
}
