// Package grid stores raw cell contents and the sparse style map of one
// sheet. The grid is rectangular and only ever grows.
package grid

import (
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
)

// Grid is the mutable 2-D cell store. Cells are addressed positions, not
// allocated objects; every row has the same length.
type Grid struct {
	cells   [][]string
	styles  map[models.CellKey]models.Style
	version uint64
}

// New creates an empty grid of at least rows x cols.
func New(rows, cols int) *Grid {
	g := &Grid{styles: make(map[models.CellKey]models.Style)}
	g.ResizeToMinimum(rows, cols)
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// Bounds returns the current row and column counts.
func (g *Grid) Bounds() (rows, cols int) { return g.Rows(), g.Cols() }

// Version increases on every mutation.
func (g *Grid) Version() uint64 { return g.version }

// Cell returns the raw content at (row, col), or "" outside the grid.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || col < 0 || row >= g.Rows() || col >= g.Cols() {
		return ""
	}
	return g.cells[row][col]
}

// SetCell writes content at (row, col), growing the grid first when the
// address lies beyond the current bounds. Negative addresses are ignored.
func (g *Grid) SetCell(row, col int, content string) {
	if row < 0 || col < 0 {
		return
	}
	g.ResizeToMinimum(row+1, col+1)
	if g.cells[row][col] == content {
		return
	}
	g.cells[row][col] = content
	g.version++
}

// ResizeToMinimum grows the grid to at least rows x cols. It never
// truncates and is idempotent.
func (g *Grid) ResizeToMinimum(rows, cols int) {
	cols = max(cols, g.Cols())
	grown := false
	if cols > g.Cols() {
		for i, row := range g.cells {
			g.cells[i] = append(row, make([]string, cols-len(row))...)
		}
		grown = true
	}
	for len(g.cells) < rows {
		g.cells = append(g.cells, make([]string, cols))
		grown = true
	}
	if grown {
		g.version++
	}
}

// Style returns the style overrides of (row, col).
func (g *Grid) Style(row, col int) models.Style {
	return g.styles[models.KeyOf(models.Coord{Row: row, Col: col})]
}

// SetStyle replaces the style overrides of (row, col). A zero style
// removes the entry.
func (g *Grid) SetStyle(row, col int, st models.Style) {
	if row < 0 || col < 0 {
		return
	}
	g.ResizeToMinimum(row+1, col+1)
	key := models.KeyOf(models.Coord{Row: row, Col: col})
	if g.styles[key] == st {
		if st.IsZero() {
			delete(g.styles, key)
		}
		return
	}
	if st.IsZero() {
		delete(g.styles, key)
	} else {
		g.styles[key] = st
	}
	g.version++
}

// StyleCount returns the number of cells carrying overrides.
func (g *Grid) StyleCount() int { return len(g.styles) }

// ClearRect empties the content of every cell in r. Styles are kept.
func (g *Grid) ClearRect(r models.Rect) {
	for c := range r.Cells() {
		if g.Cell(c.Row, c.Col) != "" {
			g.SetCell(c.Row, c.Col, "")
		}
	}
}
