package grid

import (
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
)

// UsedRange returns the bounding box of non-empty cells. It returns false
// when every cell is empty.
func (g *Grid) UsedRange() (models.Rect, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(g.cells)
	if minRow < 0 {
		return models.Rect{}, false
	}
	return models.Rect{Top: minRow, Left: minCol, Bottom: maxRow, Right: maxCol}, true
}

// CountNonEmpty counts non-empty cells within r.
func (g *Grid) CountNonEmpty(r models.Rect) int {
	count := 0
	for c := range r.Cells() {
		if g.Cell(c.Row, c.Col) != "" {
			count++
		}
	}
	return count
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}
