package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
)

// Styles controls the editor's rendering.
type Styles struct {
	Header    lipgloss.Style
	Gutter    lipgloss.Style
	Separator lipgloss.Style
	Selection lipgloss.Style
	Active    lipgloss.Style
	Editing   lipgloss.Style
	Status    lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the editor colours for a dark terminal.
func DefaultStyles() Styles {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")),
		Gutter:    dim,
		Separator: dim,
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Active:    lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15")),
		Editing:   lipgloss.NewStyle().Reverse(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Help:      dim,
	}
}

// fontStyle renders a cell's style overrides.
func fontStyle(st models.Style) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(st.Bold).Italic(st.Italic).Underline(st.Underline)
	if st.Color != "" {
		s = s.Foreground(lipgloss.Color(st.Color))
	}
	return s
}
