package grid

import (
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/ref"
)

// FromSnapshot builds a grid from a snapshot, padding ragged rows and
// growing to at least minRows x minCols. A style key grows the grid to
// cover its cell. Keys that do not decode, or that name a cell no address
// can reach, are returned unapplied so the caller can report them.
func FromSnapshot(snap models.Snapshot, minRows, minCols int) (*Grid, []models.CellKey) {
	width := 0
	for _, row := range snap.Grid {
		width = max(width, len(row))
	}

	g := &Grid{
		cells:  make([][]string, len(snap.Grid)),
		styles: make(map[models.CellKey]models.Style, len(snap.Styles)),
	}
	for i, row := range snap.Grid {
		cells := make([]string, width)
		copy(cells, row)
		g.cells[i] = cells
	}
	g.ResizeToMinimum(minRows, minCols)

	var dropped []models.CellKey
	for key, st := range snap.Styles {
		c, ok := models.ParseCellKey(key)
		if !ok || !ref.InBounds(c) {
			dropped = append(dropped, key)
			continue
		}
		g.SetStyle(c.Row, c.Col, st)
	}
	g.version = 0
	return g, dropped
}

// Snapshot returns a copy of the grid contents and style map.
func (g *Grid) Snapshot() models.Snapshot {
	cells := make([][]string, len(g.cells))
	for i, row := range g.cells {
		cells[i] = append([]string(nil), row...)
	}
	styles := make(map[models.CellKey]models.Style, len(g.styles))
	for k, v := range g.styles {
		styles[k] = v
	}
	return models.Snapshot{Grid: cells, Styles: styles}
}
