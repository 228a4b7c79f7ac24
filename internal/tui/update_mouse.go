package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/selection"
)

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		c, ok := m.cellAt(msg.X, msg.Y)
		if !ok {
			return m
		}
		now := m.cfg.Now()
		if !m.lastClick.IsZero() && c == m.lastClickCell && now.Sub(m.lastClick) <= m.cfg.DoubleClickInterval {
			m.lastClick = time.Time{}
			m.sheet.Dispatch(selection.DoubleClick{Cell: c})
			return m
		}
		m.lastClick, m.lastClickCell = now, c
		m.sheet.Dispatch(selection.PointerDown{Cell: c})

	case tea.MouseActionMotion:
		if !m.sheet.Selection().Dragging() {
			return m
		}
		x, y := m.clampToGrid(msg.X, msg.Y)
		if c, ok := m.cellAt(x, y); ok {
			m.sheet.Dispatch(selection.PointerMove{Cell: c})
		}

	case tea.MouseActionRelease:
		m.sheet.Dispatch(selection.PointerUp{})
	}
	return m
}

// cellAt maps a screen position to the cell drawn there.
func (m Model) cellAt(x, y int) (models.Coord, bool) {
	if x < gutterWidth || y < 1 || y > m.visibleRows() {
		return models.Coord{}, false
	}
	col := (x - gutterWidth) / (m.cfg.ColumnWidth + 1)
	if col >= m.visibleCols() {
		return models.Coord{}, false
	}
	c := models.Coord{Row: m.offRow + y - 1, Col: m.offCol + col}
	rows, cols := m.sheet.Bounds()
	if c.Row >= rows || c.Col >= cols {
		return models.Coord{}, false
	}
	return c, true
}

// clampToGrid keeps a drag inside the drawn cells.
func (m Model) clampToGrid(x, y int) (int, int) {
	x = min(max(x, gutterWidth), gutterWidth+m.visibleCols()*(m.cfg.ColumnWidth+1)-1)
	y = min(max(y, 1), m.visibleRows())
	return x, y
}
