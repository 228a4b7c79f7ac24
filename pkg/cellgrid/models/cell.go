// Package models defines the data structures shared by the grid, the
// evaluator, the selection machine and their hosts.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is a zero-based cell position.
type Coord struct {
	// Row is the row index (0-based).
	Row int `json:"row"`
	// Col is the column index (0-based).
	Col int `json:"col"`
}

// Valid reports whether both indices are non-negative.
func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Col >= 0
}

// CellKey identifies a cell in the style map using the "row-col" form.
type CellKey string

// KeyOf returns the style map key for c.
func KeyOf(c Coord) CellKey {
	return CellKey(fmt.Sprintf("%d-%d", c.Row, c.Col))
}

// ParseCellKey decodes a "row-col" key.
func ParseCellKey(k CellKey) (Coord, bool) {
	rowStr, colStr, ok := strings.Cut(string(k), "-")
	if !ok {
		return Coord{}, false
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil || row < 0 {
		return Coord{}, false
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 0 {
		return Coord{}, false
	}
	return Coord{Row: row, Col: col}, true
}

// CellRow represents a single row of evaluated cells.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column name (e.g. "B") to the displayed value.
	C map[string]string `json:"c"`
}

// DisplayView is the evaluated content of a rectangle of the grid.
type DisplayView struct {
	// Range is the A1-style range the view covers.
	Range string `json:"range"`
	// Rows contains rows that have at least one non-empty display value.
	Rows []CellRow `json:"rows,omitempty"`
}
