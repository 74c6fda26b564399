package dicemachine

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVHeader is the header record of the tabular export.
const CSVHeader = "Row,Column,Dice Value"

// ExportCSV serializes the grid as one "row,column,value" record per cell,
// 1-based and in row-major order. Records are separated by newlines.
func ExportCSV(grid Grid) (string, error) {
	if grid.Rows() == 0 || grid.Cols() == 0 {
		return "", ErrEmptyGrid
	}

	var sb strings.Builder
	sb.WriteString(CSVHeader)
	for y, row := range grid {
		for x, face := range row {
			sb.WriteByte('\n')
			sb.WriteString(strconv.Itoa(y + 1))
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(x + 1))
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(face))
		}
	}
	return sb.String(), nil
}

// ExportMatrixCSV serializes the grid as one line of comma separated faces per row.
func ExportMatrixCSV(grid Grid) (string, error) {
	if grid.Rows() == 0 || grid.Cols() == 0 {
		return "", ErrEmptyGrid
	}

	lines := make([]string, len(grid))
	for y, row := range grid {
		values := make([]string, len(row))
		for x, face := range row {
			values[x] = strconv.Itoa(face)
		}
		lines[y] = strings.Join(values, ",")
	}
	return strings.Join(lines, "\n"), nil
}

// ParseCSV reads a tabular export back into a grid.
func ParseCSV(r io.Reader) (Grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 || strings.Join(records[0], ",") != CSVHeader {
		return nil, fmt.Errorf("missing csv header %q", CSVHeader)
	}

	var grid Grid
	for i, record := range records[1:] {
		var values [3]int
		for j, field := range record {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("parsing record %d: %w", i+2, err)
			}
			values[j] = v
		}

		row, col, face := values[0], values[1], values[2]
		if row == len(grid)+1 && col == 1 {
			grid = append(grid, nil)
		}
		if row < 1 || row != len(grid) || col != len(grid[row-1])+1 {
			return nil, fmt.Errorf("record %d at %d,%d is out of order", i+2, row, col)
		}
		grid[row-1] = append(grid[row-1], face)
	}

	if err := grid.Validate(); err != nil {
		return nil, err
	}
	return grid, nil
}
