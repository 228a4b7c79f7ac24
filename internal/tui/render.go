package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/ref"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/selection"
)

func (m Model) View() string {
	var b strings.Builder
	st := m.cfg.Styles
	rows, cols := m.sheet.Bounds()
	lastRow := min(m.offRow+m.visibleRows(), rows)
	lastCol := min(m.offCol+m.visibleCols(), cols)

	sel, hasSel := m.sheet.Selection().Selection()
	active, hasActive := m.sheet.Selection().Active()
	editing := m.sheet.Selection().Mode() == selection.Editing

	// header
	b.WriteString(st.Gutter.Render(strings.Repeat(" ", gutterWidth)))
	for c := m.offCol; c < lastCol; c++ {
		b.WriteString(st.Header.Render(center(ref.ColumnName(c), m.cfg.ColumnWidth)))
		b.WriteString(st.Separator.Render("│"))
	}
	b.WriteString("\n")

	for r := m.offRow; r < lastRow; r++ {
		b.WriteString(st.Gutter.Render(fmt.Sprintf("%*d ", gutterWidth-1, r+1)))
		for c := m.offCol; c < lastCol; c++ {
			at := models.Coord{Row: r, Col: c}
			text := m.sheet.Display(r, c)
			cell := fontStyle(m.sheet.Style(r, c))
			switch {
			case hasActive && at == active && editing:
				text = m.sheet.Get(r, c) + "_"
				cell = cell.Inherit(st.Editing)
			case hasActive && at == active:
				cell = cell.Inherit(st.Active)
			case hasSel && sel.Contains(at):
				cell = cell.Inherit(st.Selection)
			}
			b.WriteString(cell.Render(fit(text, m.cfg.ColumnWidth)))
			b.WriteString(st.Separator.Render("│"))
		}
		b.WriteString("\n")
	}

	b.WriteString(st.Status.Render(m.status()))
	b.WriteString("\n")
	b.WriteString(st.Help.Render(m.help()))
	return b.String()
}

// status shows the selection, the mode and the raw content of the active
// cell.
func (m Model) status() string {
	machine := m.sheet.Selection()
	sel, ok := machine.Selection()
	if !ok {
		return " " + machine.Mode().String()
	}
	active, _ := machine.Active()
	return fmt.Sprintf(" %s %s  %s", ref.FormatRange(sel), machine.Mode(), m.sheet.Get(active.Row, active.Col))
}

func (m Model) help() string {
	parts := make([]string, 0, 6)
	for _, kb := range m.cfg.KeyMap.ShortHelp() {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return " " + strings.Join(parts, "  ")
}

// fit truncates or pads s to exactly width terminal columns.
func fit(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

func center(s string, width int) string {
	return fit(lipgloss.PlaceHorizontal(width, lipgloss.Center, s), width)
}
