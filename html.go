package dicemachine

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// DefaultBoardDimension is the number of dice per side of an assembly board.
const DefaultBoardDimension = 20

// WriteHTML writes an HTML assembly sheet of the grid. Every die is shown
// in its face color with its face value, board borders are drawn every
// boardDimension dice.
func WriteHTML(w io.Writer, grid Grid, style FaceStyle, boardDimension int) error {
	if grid.Rows() == 0 || grid.Cols() == 0 {
		return ErrEmptyGrid
	}
	if boardDimension < 1 {
		boardDimension = DefaultBoardDimension
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("<html>\n<head>\n")
	bw.WriteString("<style type=\"text/css\">\n")
	bw.WriteString("td { text-align: center; width: 1.5em; height: 1.5em; }\n")
	bw.WriteString(".lb { border-left: 2px solid black !important; }\n")
	bw.WriteString(".rb { border-right: 2px solid black !important; }\n")
	bw.WriteString(".tb td { border-top: 2px solid black !important; }\n")
	bw.WriteString(".bb td { border-bottom: 2px solid black !important; }\n")
	bw.WriteString("</style>\n</head>\n<body>\n")
	bw.WriteString("<table style=\"border-spacing: 0px;\">\n")

	for y, row := range grid {
		bw.WriteString("<tr")
		writeBorderClass(bw, y == 0, (y+1)%boardDimension == 0 || y == len(grid)-1, "tb", "bb")
		bw.WriteString(">")

		for x, face := range row {
			fill := style.Color(face)
			text := pipColor(fill)
			fmt.Fprintf(bw, "<td style=\"background-color: #%02X%02X%02X; color: #%02X%02X%02X\"",
				fill.R, fill.G, fill.B, text.R, text.G, text.B)
			writeBorderClass(bw, x == 0, (x+1)%boardDimension == 0 || x == len(row)-1, "lb", "rb")
			bw.WriteString(">" + strconv.Itoa(face) + "</td>")
		}
		bw.WriteString("</tr>\n")
	}

	bw.WriteString("</table>\n</body>\n</html>\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	return nil
}

// writeBorderClass writes the class attribute for the board borders of a
// row or cell. A single row or column grid needs both borders.
func writeBorderClass(bw *bufio.Writer, first, last bool, firstClass, lastClass string) {
	switch {
	case first && last:
		bw.WriteString(" class=\"" + firstClass + " " + lastClass + "\"")
	case first:
		bw.WriteString(" class=\"" + firstClass + "\"")
	case last:
		bw.WriteString(" class=\"" + lastClass + "\"")
	}
}
