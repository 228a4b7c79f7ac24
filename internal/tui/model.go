// Package tui is a terminal host for a cellgrid sheet. It maps bubbletea
// key and mouse messages onto selection events and renders display values
// with cell styles.
package tui

import (
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
)

const (
	defaultColumnWidth = 10
	defaultDoubleClick = 400 * time.Millisecond
	defaultWidth       = 80
	defaultHeight      = 24

	gutterWidth = 5
	// header line above the grid, status and help lines below it
	chromeLines = 3
)

// DefaultPalette is cycled by the colour key. The empty entry removes the
// colour override.
var DefaultPalette = []string{"", "#c00000", "#1a73e8", "#188038", "#e37400"}

// Config configures a Model. Zero fields take defaults.
type Config struct {
	KeyMap              KeyMap
	Styles              *Styles
	ColumnWidth         int
	DoubleClickInterval time.Duration
	Palette             []string

	// Now replaces time.Now for double click detection.
	Now func() time.Time
}

// Model is a bubbletea model editing one sheet in place.
type Model struct {
	sheet *cellgrid.Sheet
	cfg   Config

	width, height  int
	offRow, offCol int

	lastClick     time.Time
	lastClickCell models.Coord
}

// New returns a model over sheet.
func New(sheet *cellgrid.Sheet, cfg Config) Model {
	if reflect.DeepEqual(cfg.KeyMap, KeyMap{}) {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.Styles == nil {
		st := DefaultStyles()
		cfg.Styles = &st
	}
	if cfg.ColumnWidth <= 0 {
		cfg.ColumnWidth = defaultColumnWidth
	}
	if cfg.DoubleClickInterval <= 0 {
		cfg.DoubleClickInterval = defaultDoubleClick
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultPalette
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return Model{
		sheet:  sheet,
		cfg:    cfg,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// Sheet returns the edited sheet.
func (m Model) Sheet() *cellgrid.Sheet { return m.sheet }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m = m.updateMouse(msg)
	}
	m.scrollToActive()
	return m, cmd
}

// visibleRows is the number of grid rows that fit on screen.
func (m Model) visibleRows() int {
	return max(m.height-chromeLines, 1)
}

// visibleCols is the number of grid columns that fit on screen.
func (m Model) visibleCols() int {
	return max((m.width-gutterWidth)/(m.cfg.ColumnWidth+1), 1)
}

// scrollToActive moves the viewport so the free corner of the selection
// stays on screen.
func (m *Model) scrollToActive() {
	sel, ok := m.sheet.Selection().Selection()
	if !ok {
		return
	}
	active, _ := m.sheet.Selection().Active()
	focus := active
	if sel.Top != active.Row || sel.Bottom != active.Row {
		focus.Row = otherEdge(sel.Top, sel.Bottom, active.Row)
	}
	if sel.Left != active.Col || sel.Right != active.Col {
		focus.Col = otherEdge(sel.Left, sel.Right, active.Col)
	}

	rows, cols := m.visibleRows(), m.visibleCols()
	if focus.Row < m.offRow {
		m.offRow = focus.Row
	} else if focus.Row >= m.offRow+rows {
		m.offRow = focus.Row - rows + 1
	}
	if focus.Col < m.offCol {
		m.offCol = focus.Col
	} else if focus.Col >= m.offCol+cols {
		m.offCol = focus.Col - cols + 1
	}
}

func otherEdge(lo, hi, anchor int) int {
	if anchor == lo {
		return hi
	}
	return lo
}
