// Package selection tracks the active cell, the anchor-based selection
// rectangle and the editing mode of a sheet, and turns pointer and
// keyboard events into grid mutations.
package selection

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/grid"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
)

// Mode is the state of the machine.
type Mode uint8

const (
	// Idle has no active cell.
	Idle Mode = iota
	// Selected has an active cell and a selection, not editing.
	Selected
	// Editing has the active cell in text entry.
	Editing
)

func (m Mode) String() string {
	switch m {
	case Selected:
		return "selected"
	case Editing:
		return "editing"
	default:
		return "idle"
	}
}

// Host is the grid the machine reads and mutates.
type Host interface {
	Bounds() (rows, cols int)
	Cell(row, col int) string
	SetCell(row, col int, content string)
	Style(row, col int) models.Style
	SetStyle(row, col int, st models.Style)
}

// Machine is the selection/edit state machine. The active cell is the
// anchor; the free corner moves on drag and shift+arrow.
type Machine struct {
	host Host
	mode Mode

	anchor models.Coord
	free   models.Coord

	dragging bool
}

// New returns an idle machine over host.
func New(host Host) *Machine {
	return &Machine{host: host}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Active returns the active cell. It returns false when idle.
func (m *Machine) Active() (models.Coord, bool) {
	if m.mode == Idle {
		return models.Coord{}, false
	}
	return m.anchor, true
}

// Selection returns the selection rectangle. It returns false when idle.
func (m *Machine) Selection() (models.Rect, bool) {
	if m.mode == Idle {
		return models.Rect{}, false
	}
	return models.NewRect(m.anchor, m.free), true
}

// Dragging reports whether a pointer press is being tracked.
func (m *Machine) Dragging() bool { return m.dragging }

// SetHost points the machine at a new grid and clamps the selection to
// its bounds.
func (m *Machine) SetHost(host Host) {
	m.host = host
	m.Clamp()
}

// Clamp moves both selection corners back inside the host bounds.
func (m *Machine) Clamp() {
	if m.mode == Idle {
		return
	}
	m.anchor = m.clamp(m.anchor)
	m.free = m.clamp(m.free)
}

// Reset returns the machine to Idle.
func (m *Machine) Reset() {
	m.mode = Idle
	m.dragging = false
	m.anchor, m.free = models.Coord{}, models.Coord{}
}

// Handle applies ev and reports whether the grid was mutated. Events that
// make no sense in the current state are ignored.
func (m *Machine) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case PointerDown:
		if !ev.Cell.Valid() {
			return false
		}
		m.selectCell(ev.Cell)
		m.dragging = true
	case PointerMove:
		if !m.dragging || m.mode != Selected || !ev.Cell.Valid() {
			return false
		}
		m.free = m.clamp(ev.Cell)
	case PointerUp:
		m.dragging = false
	case DoubleClick:
		if !ev.Cell.Valid() {
			return false
		}
		m.selectCell(ev.Cell)
		m.dragging = false
		m.mode = Editing
	case Key:
		return m.handleKey(ev)
	case ToggleStyle:
		return m.toggleStyle(ev.Attr)
	case SetColor:
		return m.setColor(ev.Color)
	case Paste:
		return m.paste(ev.Text)
	case Input:
		if m.mode == Idle {
			return false
		}
		return m.setCell(m.anchor, ev.Text)
	}
	return false
}

func (m *Machine) handleKey(k Key) bool {
	switch m.mode {
	case Selected:
		return m.navigate(k)
	case Editing:
		return m.edit(k)
	}
	return false
}

// navigate handles keys while a selection is shown.
func (m *Machine) navigate(k Key) bool {
	switch k.Code {
	case KeyRune:
		if !unicode.IsPrint(k.Rune) {
			return false
		}
		m.free = m.anchor
		m.mode = Editing
		return m.setCell(m.anchor, string(k.Rune))
	case KeyUp:
		m.step(-1, 0, k.Shift)
	case KeyDown:
		m.step(1, 0, k.Shift)
	case KeyLeft:
		m.step(0, -1, k.Shift)
	case KeyRight:
		m.step(0, 1, k.Shift)
	case KeyEnter:
		m.step(1, 0, false)
	case KeyTab:
		m.step(0, 1, false)
	case KeyBackspace, KeyDelete:
		return m.clearSelection()
	case KeyEscape:
		m.free = m.anchor
	}
	return false
}

// edit handles keys while the active cell is in text entry. Content is
// written through on every keystroke.
func (m *Machine) edit(k Key) bool {
	content := m.host.Cell(m.anchor.Row, m.anchor.Col)
	switch k.Code {
	case KeyRune:
		if !unicode.IsPrint(k.Rune) {
			return false
		}
		return m.setCell(m.anchor, content+string(k.Rune))
	case KeyBackspace:
		if content == "" {
			return false
		}
		_, size := utf8.DecodeLastRuneInString(content)
		return m.setCell(m.anchor, content[:len(content)-size])
	case KeyEnter:
		m.mode = Selected
		m.step(1, 0, false)
	case KeyTab:
		m.mode = Selected
		m.step(0, 1, false)
	case KeyEscape:
		m.mode = Selected
	}
	return false
}

// step moves the active cell, or the free corner when extend is set.
func (m *Machine) step(dRow, dCol int, extend bool) {
	if extend {
		m.free = m.clamp(models.Coord{Row: m.free.Row + dRow, Col: m.free.Col + dCol})
		return
	}
	m.anchor = m.clamp(models.Coord{Row: m.anchor.Row + dRow, Col: m.anchor.Col + dCol})
	m.free = m.anchor
}

func (m *Machine) selectCell(c models.Coord) {
	c = m.clamp(c)
	m.anchor, m.free = c, c
	m.mode = Selected
}

func (m *Machine) clearSelection() bool {
	mutated := false
	for c := range models.NewRect(m.anchor, m.free).Cells() {
		if m.setCell(c, "") {
			mutated = true
		}
	}
	return mutated
}

// toggleStyle sets attr on every selected cell to the negation of the
// active cell's current value.
func (m *Machine) toggleStyle(attr models.StyleAttr) bool {
	if m.mode == Idle {
		return false
	}
	on := !m.host.Style(m.anchor.Row, m.anchor.Col).Get(attr)
	mutated := false
	for c := range models.NewRect(m.anchor, m.free).Cells() {
		st := m.host.Style(c.Row, c.Col)
		if m.setStyle(c, st.With(attr, on)) {
			mutated = true
		}
	}
	return mutated
}

func (m *Machine) setColor(color string) bool {
	if m.mode == Idle {
		return false
	}
	mutated := false
	for c := range models.NewRect(m.anchor, m.free).Cells() {
		st := m.host.Style(c.Row, c.Col)
		st.Color = color
		if m.setStyle(c, st) {
			mutated = true
		}
	}
	return mutated
}

// paste writes a delimited block starting at the active cell and selects
// the pasted rectangle. While editing, the text is typed into the cell.
func (m *Machine) paste(text string) bool {
	if m.mode == Idle || text == "" {
		return false
	}
	if m.mode == Editing {
		content := m.host.Cell(m.anchor.Row, m.anchor.Col)
		return m.setCell(m.anchor, content+text)
	}

	text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	rows := grid.ParseLegacy(text)
	mutated := false
	width := 0
	for i, row := range rows {
		width = max(width, len(row))
		for j, content := range row {
			if m.setCell(models.Coord{Row: m.anchor.Row + i, Col: m.anchor.Col + j}, content) {
				mutated = true
			}
		}
	}
	if len(rows) > 0 {
		m.free = m.clamp(models.Coord{Row: m.anchor.Row + len(rows) - 1, Col: m.anchor.Col + width - 1})
	}
	return mutated
}

func (m *Machine) setCell(c models.Coord, content string) bool {
	if m.host.Cell(c.Row, c.Col) == content {
		return false
	}
	m.host.SetCell(c.Row, c.Col, content)
	return true
}

func (m *Machine) setStyle(c models.Coord, st models.Style) bool {
	if m.host.Style(c.Row, c.Col) == st {
		return false
	}
	m.host.SetStyle(c.Row, c.Col, st)
	return true
}

func (m *Machine) clamp(c models.Coord) models.Coord {
	rows, cols := m.host.Bounds()
	return models.Coord{
		Row: min(max(c.Row, 0), max(rows-1, 0)),
		Col: min(max(c.Col, 0), max(cols-1, 0)),
	}
}
