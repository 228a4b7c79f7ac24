package models

import "iter"

// Rect represents inclusive cell coordinate bounds.
type Rect struct {
	// Top is the start row (0-based).
	Top int `json:"top"`
	// Left is the start column (0-based).
	Left int `json:"left"`
	// Bottom is the end row (0-based, inclusive).
	Bottom int `json:"bottom"`
	// Right is the end column (0-based, inclusive).
	Right int `json:"right"`
}

// NewRect returns the rectangle spanned by a and b regardless of which
// corner is larger.
func NewRect(a, b Coord) Rect {
	return Rect{
		Top:    min(a.Row, b.Row),
		Left:   min(a.Col, b.Col),
		Bottom: max(a.Row, b.Row),
		Right:  max(a.Col, b.Col),
	}
}

// Contains reports whether c lies inside r.
func (r Rect) Contains(c Coord) bool {
	return c.Row >= r.Top && c.Row <= r.Bottom && c.Col >= r.Left && c.Col <= r.Right
}

// Height returns the number of rows covered.
func (r Rect) Height() int { return r.Bottom - r.Top + 1 }

// Width returns the number of columns covered.
func (r Rect) Width() int { return r.Right - r.Left + 1 }

// Cells iterates the rectangle row by row.
func (r Rect) Cells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for row := r.Top; row <= r.Bottom; row++ {
			for col := r.Left; col <= r.Right; col++ {
				if !yield(Coord{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}
