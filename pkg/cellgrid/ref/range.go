package ref

import (
	"strings"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
)

// ExpandRange resolves both endpoints and returns every coordinate of the
// inclusive rectangle between them, row by row from the top-left corner.
// Ranges are direction-agnostic. The result is empty if either endpoint
// fails to parse.
func ExpandRange(from, to string) []models.Coord {
	r, ok := rangeOf(from, to)
	if !ok {
		return nil
	}
	out := make([]models.Coord, 0, r.Height()*r.Width())
	for c := range r.Cells() {
		out = append(out, c)
	}
	return out
}

// ParseRange parses "A1:C3" (or a single address) into a rectangle.
func ParseRange(s string) (models.Rect, bool) {
	s = strings.TrimSpace(s)
	from, to, found := strings.Cut(s, ":")
	if !found {
		to = from
	}
	return rangeOf(strings.TrimSpace(from), strings.TrimSpace(to))
}

// FormatRange renders r as "A1:C3", or "A1" for a single cell.
func FormatRange(r models.Rect) string {
	start := Encode(models.Coord{Row: r.Top, Col: r.Left})
	end := Encode(models.Coord{Row: r.Bottom, Col: r.Right})
	if start == end {
		return start
	}
	return start + ":" + end
}

func rangeOf(from, to string) (models.Rect, bool) {
	a, ok := Parse(from)
	if !ok {
		return models.Rect{}, false
	}
	b, ok := Parse(to)
	if !ok {
		return models.Rect{}, false
	}
	return models.NewRect(a, b), true
}
