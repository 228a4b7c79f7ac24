package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/selection"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	if key.Matches(msg, km.Quit) {
		return m, tea.Quit
	}

	// Bracketed paste is literal text, never a shortcut.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.sheet.Dispatch(selection.Paste{Text: string(msg.Runes)})
		return m, nil
	}

	switch {
	case key.Matches(msg, km.Up):
		m.dispatchKey(selection.KeyUp, false)
	case key.Matches(msg, km.Down):
		m.dispatchKey(selection.KeyDown, false)
	case key.Matches(msg, km.Left):
		m.dispatchKey(selection.KeyLeft, false)
	case key.Matches(msg, km.Right):
		m.dispatchKey(selection.KeyRight, false)

	case key.Matches(msg, km.ExtendUp):
		m.dispatchKey(selection.KeyUp, true)
	case key.Matches(msg, km.ExtendDown):
		m.dispatchKey(selection.KeyDown, true)
	case key.Matches(msg, km.ExtendLeft):
		m.dispatchKey(selection.KeyLeft, true)
	case key.Matches(msg, km.ExtendRight):
		m.dispatchKey(selection.KeyRight, true)

	case key.Matches(msg, km.Enter):
		m.dispatchKey(selection.KeyEnter, false)
	case key.Matches(msg, km.Tab):
		m.dispatchKey(selection.KeyTab, false)
	case key.Matches(msg, km.Escape):
		m.dispatchKey(selection.KeyEscape, false)
	case key.Matches(msg, km.Backspace):
		m.dispatchKey(selection.KeyBackspace, false)
	case key.Matches(msg, km.Delete):
		m.dispatchKey(selection.KeyDelete, false)

	case key.Matches(msg, km.Bold):
		m.sheet.Dispatch(selection.ToggleStyle{Attr: models.AttrBold})
	case key.Matches(msg, km.Italic):
		m.sheet.Dispatch(selection.ToggleStyle{Attr: models.AttrItalic})
	case key.Matches(msg, km.Underline):
		m.sheet.Dispatch(selection.ToggleStyle{Attr: models.AttrUnderline})
	case key.Matches(msg, km.CycleColor):
		m.cycleColor()

	case msg.Type == tea.KeySpace:
		m.sheet.Dispatch(selection.Key{Code: selection.KeyRune, Rune: ' '})
	case msg.Type == tea.KeyRunes && !msg.Alt:
		for _, r := range msg.Runes {
			m.sheet.Dispatch(selection.Key{Code: selection.KeyRune, Rune: r})
		}
	}
	return m, nil
}

func (m Model) dispatchKey(code selection.KeyCode, shift bool) {
	m.sheet.Dispatch(selection.Key{Code: code, Shift: shift})
}

// cycleColor sets the selection to the palette entry after the active
// cell's colour.
func (m Model) cycleColor() {
	active, ok := m.sheet.Selection().Active()
	if !ok {
		return
	}
	palette := m.cfg.Palette
	current := m.sheet.Style(active.Row, active.Col).Color
	next := palette[(slices.Index(palette, current)+1)%len(palette)]
	m.sheet.Dispatch(selection.SetColor{Color: next})
}
