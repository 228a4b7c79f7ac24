package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the sheet editor key bindings. Plain runes are not bound:
// they start or continue editing the active cell.
type KeyMap struct {
	Up, Down, Left, Right                         key.Binding
	ExtendUp, ExtendDown, ExtendLeft, ExtendRight key.Binding

	Enter, Tab, Escape key.Binding
	Backspace, Delete  key.Binding

	Bold, Italic, Underline key.Binding
	CycleColor              key.Binding

	Quit key.Binding
}

// DefaultKeyMap returns the arrow, shift-arrow and alt-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),

		ExtendUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "extend up")),
		ExtendDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "extend down")),
		ExtendLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "extend left")),
		ExtendRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "extend right")),

		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit/down")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "commit/right")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop editing")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "clear")),

		// Terminals fold ctrl+i into tab and ctrl+b into tmux, so styles live on alt.
		Bold:       key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "bold")),
		Italic:     key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		Underline:  key.NewBinding(key.WithKeys("alt+u"), key.WithHelp("alt+u", "underline")),
		CycleColor: key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "color")),

		Quit: key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the status line.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.ExtendDown, km.Bold, km.Italic, km.Underline, km.CycleColor, km.Quit}
}
