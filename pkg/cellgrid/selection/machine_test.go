package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/grid"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
)

func at(row, col int) models.Coord { return models.Coord{Row: row, Col: col} }

func typeText(m *Machine, s string) {
	for _, r := range s {
		m.Handle(Key{Code: KeyRune, Rune: r})
	}
}

func TestStartsIdle(t *testing.T) {
	m := New(grid.New(5, 5))
	assert.Equal(t, Idle, m.Mode())
	_, ok := m.Active()
	assert.False(t, ok)
	_, ok = m.Selection()
	assert.False(t, ok)
}

func TestIdleIgnoresInput(t *testing.T) {
	g := grid.New(5, 5)
	before := g.Version()
	m := New(g)
	assert.False(t, m.Handle(Key{Code: KeyRune, Rune: 'x'}))
	assert.False(t, m.Handle(Key{Code: KeyDown}))
	assert.False(t, m.Handle(ToggleStyle{Attr: models.AttrBold}))
	assert.False(t, m.Handle(SetColor{Color: "#ff0000"}))
	assert.False(t, m.Handle(Paste{Text: "a,b"}))
	assert.False(t, m.Handle(Input{Text: "a"}))
	assert.False(t, m.Handle(PointerMove{Cell: at(1, 1)}))
	assert.Equal(t, Idle, m.Mode())
	assert.Equal(t, before, g.Version())
}

func TestPointerDragSelects(t *testing.T) {
	m := New(grid.New(10, 10))

	m.Handle(PointerDown{Cell: at(1, 1)})
	assert.Equal(t, Selected, m.Mode())
	assert.True(t, m.Dragging())

	m.Handle(PointerMove{Cell: at(3, 4)})
	m.Handle(PointerUp{})
	assert.False(t, m.Dragging())

	active, ok := m.Active()
	require.True(t, ok)
	assert.Equal(t, at(1, 1), active)
	sel, _ := m.Selection()
	assert.Equal(t, models.Rect{Top: 1, Left: 1, Bottom: 3, Right: 4}, sel)

	// motion after release does not extend
	m.Handle(PointerMove{Cell: at(8, 8)})
	sel, _ = m.Selection()
	assert.Equal(t, models.Rect{Top: 1, Left: 1, Bottom: 3, Right: 4}, sel)
}

func TestDragUpwardsIsOrderIndependent(t *testing.T) {
	m := New(grid.New(10, 10))
	m.Handle(PointerDown{Cell: at(5, 5)})
	m.Handle(PointerMove{Cell: at(2, 3)})
	sel, _ := m.Selection()
	assert.Equal(t, models.Rect{Top: 2, Left: 3, Bottom: 5, Right: 5}, sel)
	active, _ := m.Active()
	assert.Equal(t, at(5, 5), active)
}

func TestPointerCoordinatesAreClamped(t *testing.T) {
	m := New(grid.New(4, 3))
	m.Handle(PointerDown{Cell: at(10, 10)})
	active, _ := m.Active()
	assert.Equal(t, at(3, 2), active)

	assert.False(t, m.Handle(PointerDown{Cell: at(-1, 0)}))
	active, _ = m.Active()
	assert.Equal(t, at(3, 2), active, "negative press is ignored")
}

func TestTypeToOverwrite(t *testing.T) {
	g := grid.New(5, 5)
	g.SetCell(0, 0, "old")
	m := New(g)
	m.Handle(PointerDown{Cell: at(0, 0)})
	m.Handle(PointerUp{})

	assert.True(t, m.Handle(Key{Code: KeyRune, Rune: '4'}))
	assert.Equal(t, Editing, m.Mode())
	assert.Equal(t, "4", g.Cell(0, 0))

	typeText(m, "2")
	assert.Equal(t, "42", g.Cell(0, 0))

	m.Handle(Key{Code: KeyEnter})
	assert.Equal(t, Selected, m.Mode())
	active, _ := m.Active()
	assert.Equal(t, at(1, 0), active)
}

func TestTypingCollapsesSelection(t *testing.T) {
	m := New(grid.New(5, 5))
	m.Handle(PointerDown{Cell: at(0, 0)})
	m.Handle(PointerMove{Cell: at(2, 2)})
	m.Handle(PointerUp{})
	m.Handle(Key{Code: KeyRune, Rune: 'x'})
	sel, _ := m.Selection()
	assert.Equal(t, models.Rect{}, sel)
}

func TestDoubleClickEditsInPlace(t *testing.T) {
	g := grid.New(5, 5)
	g.SetCell(2, 2, "ab")
	m := New(g)
	m.Handle(PointerDown{Cell: at(0, 0)})
	m.Handle(PointerMove{Cell: at(1, 1)})

	m.Handle(DoubleClick{Cell: at(2, 2)})
	assert.Equal(t, Editing, m.Mode())
	assert.False(t, m.Dragging())
	sel, _ := m.Selection()
	assert.Equal(t, models.Rect{Top: 2, Left: 2, Bottom: 2, Right: 2}, sel)

	typeText(m, "c")
	assert.Equal(t, "abc", g.Cell(2, 2))
	assert.True(t, m.Handle(Key{Code: KeyBackspace}))
	assert.True(t, m.Handle(Key{Code: KeyBackspace}))
	assert.Equal(t, "a", g.Cell(2, 2))
}

func TestBackspaceRemovesWholeRune(t *testing.T) {
	g := grid.New(2, 2)
	g.SetCell(0, 0, "né")
	m := New(g)
	m.Handle(DoubleClick{Cell: at(0, 0)})
	m.Handle(Key{Code: KeyBackspace})
	assert.Equal(t, "n", g.Cell(0, 0))
	m.Handle(Key{Code: KeyBackspace})
	assert.False(t, m.Handle(Key{Code: KeyBackspace}))
}

func TestEditingExitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want models.Coord
	}{
		{"enter moves down", Key{Code: KeyEnter}, at(2, 1)},
		{"tab moves right", Key{Code: KeyTab}, at(1, 2)},
		{"escape stays", Key{Code: KeyEscape}, at(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(grid.New(5, 5))
			m.Handle(DoubleClick{Cell: at(1, 1)})
			m.Handle(tt.key)
			assert.Equal(t, Selected, m.Mode())
			active, _ := m.Active()
			assert.Equal(t, tt.want, active)
		})
	}
}

func TestArrowsIgnoredWhileEditing(t *testing.T) {
	m := New(grid.New(5, 5))
	m.Handle(DoubleClick{Cell: at(1, 1)})
	m.Handle(Key{Code: KeyDown})
	m.Handle(Key{Code: KeyRight, Shift: true})
	assert.Equal(t, Editing, m.Mode())
	sel, _ := m.Selection()
	assert.Equal(t, models.Rect{Top: 1, Left: 1, Bottom: 1, Right: 1}, sel)
}

func TestNavigationIsClamped(t *testing.T) {
	m := New(grid.New(3, 3))
	m.Handle(PointerDown{Cell: at(0, 0)})

	m.Handle(Key{Code: KeyUp})
	m.Handle(Key{Code: KeyLeft})
	active, _ := m.Active()
	assert.Equal(t, at(0, 0), active)

	for range 5 {
		m.Handle(Key{Code: KeyDown})
		m.Handle(Key{Code: KeyRight})
	}
	active, _ = m.Active()
	assert.Equal(t, at(2, 2), active)

	m.Handle(Key{Code: KeyEnter})
	m.Handle(Key{Code: KeyTab})
	active, _ = m.Active()
	assert.Equal(t, at(2, 2), active)
	assert.Equal(t, Selected, m.Mode())
}

func TestEnterAndTabMoveWithoutEditing(t *testing.T) {
	m := New(grid.New(5, 5))
	m.Handle(PointerDown{Cell: at(1, 1)})
	m.Handle(Key{Code: KeyEnter})
	m.Handle(Key{Code: KeyTab})
	active, _ := m.Active()
	assert.Equal(t, at(2, 2), active)
	assert.Equal(t, Selected, m.Mode())
}

func TestShiftArrowExtendsSelection(t *testing.T) {
	m := New(grid.New(5, 5))
	m.Handle(PointerDown{Cell: at(1, 1)})
	m.Handle(PointerUp{})
	m.Handle(Key{Code: KeyDown, Shift: true})
	m.Handle(Key{Code: KeyRight, Shift: true})
	m.Handle(Key{Code: KeyRight, Shift: true})

	active, _ := m.Active()
	assert.Equal(t, at(1, 1), active)
	sel, _ := m.Selection()
	assert.Equal(t, models.Rect{Top: 1, Left: 1, Bottom: 2, Right: 3}, sel)

	m.Handle(Key{Code: KeyLeft})
	sel, _ = m.Selection()
	assert.Equal(t, models.Rect{Top: 1, Left: 0, Bottom: 1, Right: 0}, sel)
}

func TestClearSelectionKeepsStyles(t *testing.T) {
	g := grid.New(5, 5)
	for _, c := range []models.Coord{at(0, 0), at(0, 1), at(1, 0), at(1, 1)} {
		g.SetCell(c.Row, c.Col, "v")
		g.SetStyle(c.Row, c.Col, models.Style{Italic: true})
	}
	g.SetCell(2, 2, "outside")
	m := New(g)
	m.Handle(PointerDown{Cell: at(0, 0)})
	m.Handle(PointerMove{Cell: at(1, 1)})
	m.Handle(PointerUp{})

	assert.True(t, m.Handle(Key{Code: KeyDelete}))
	for _, c := range []models.Coord{at(0, 0), at(0, 1), at(1, 0), at(1, 1)} {
		assert.Equal(t, "", g.Cell(c.Row, c.Col))
		assert.Equal(t, models.Style{Italic: true}, g.Style(c.Row, c.Col))
	}
	assert.Equal(t, "outside", g.Cell(2, 2))
	assert.False(t, m.Handle(Key{Code: KeyBackspace}), "already empty")
}

func TestToggleStyleFollowsActiveCell(t *testing.T) {
	g := grid.New(5, 5)
	g.SetStyle(0, 1, models.Style{Bold: true})
	m := New(g)
	m.Handle(PointerDown{Cell: at(0, 0)})
	m.Handle(PointerMove{Cell: at(0, 2)})

	// active cell is not bold, so every cell becomes bold
	assert.True(t, m.Handle(ToggleStyle{Attr: models.AttrBold}))
	for col := 0; col <= 2; col++ {
		assert.True(t, g.Style(0, col).Bold, "col %d", col)
	}

	// active cell is bold now, so every cell is cleared
	assert.True(t, m.Handle(ToggleStyle{Attr: models.AttrBold}))
	for col := 0; col <= 2; col++ {
		assert.False(t, g.Style(0, col).Bold, "col %d", col)
	}
	assert.Equal(t, 0, g.StyleCount())
}

func TestToggleStyleFromStyledAnchor(t *testing.T) {
	g := grid.New(5, 5)
	g.SetStyle(1, 1, models.Style{Underline: true, Color: "#00ff00"})
	m := New(g)
	m.Handle(PointerDown{Cell: at(1, 1)})
	m.Handle(PointerMove{Cell: at(2, 1)})

	m.Handle(ToggleStyle{Attr: models.AttrUnderline})
	assert.Equal(t, models.Style{Color: "#00ff00"}, g.Style(1, 1))
	assert.Equal(t, models.Style{}, g.Style(2, 1))
}

func TestSetColor(t *testing.T) {
	g := grid.New(5, 5)
	g.SetStyle(0, 0, models.Style{Bold: true})
	m := New(g)
	m.Handle(PointerDown{Cell: at(0, 0)})
	m.Handle(PointerMove{Cell: at(1, 0)})

	assert.True(t, m.Handle(SetColor{Color: "#c00000"}))
	assert.Equal(t, models.Style{Bold: true, Color: "#c00000"}, g.Style(0, 0))
	assert.Equal(t, models.Style{Color: "#c00000"}, g.Style(1, 0))

	assert.True(t, m.Handle(SetColor{Color: ""}))
	assert.Equal(t, models.Style{Bold: true}, g.Style(0, 0))
	assert.Equal(t, 1, g.StyleCount())
}

func TestPasteBlock(t *testing.T) {
	g := grid.New(40, 26)
	m := New(g)
	m.Handle(PointerDown{Cell: at(1, 1)})
	m.Handle(PointerUp{})

	assert.True(t, m.Handle(Paste{Text: "1,2\n3,4\n"}))
	assert.Equal(t, "1", g.Cell(1, 1))
	assert.Equal(t, "2", g.Cell(1, 2))
	assert.Equal(t, "3", g.Cell(2, 1))
	assert.Equal(t, "4", g.Cell(2, 2))
	sel, _ := m.Selection()
	assert.Equal(t, models.Rect{Top: 1, Left: 1, Bottom: 2, Right: 2}, sel)
	assert.Equal(t, Selected, m.Mode())
}

func TestPasteGrowsGrid(t *testing.T) {
	g := grid.New(2, 2)
	m := New(g)
	m.Handle(PointerDown{Cell: at(1, 1)})
	m.Handle(Paste{Text: "a,b,c\nd"})

	rows, cols := g.Bounds()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, "c", g.Cell(1, 3))
	assert.Equal(t, "d", g.Cell(2, 1))
	sel, _ := m.Selection()
	assert.Equal(t, models.Rect{Top: 1, Left: 1, Bottom: 2, Right: 3}, sel)
}

func TestPasteWhileEditingTypes(t *testing.T) {
	g := grid.New(2, 2)
	m := New(g)
	m.Handle(DoubleClick{Cell: at(0, 0)})
	typeText(m, "=")
	m.Handle(Paste{Text: "A1+1"})
	assert.Equal(t, "=A1+1", g.Cell(0, 0))
	assert.Equal(t, Editing, m.Mode())
}

func TestInputReplacesActiveCell(t *testing.T) {
	g := grid.New(2, 2)
	g.SetCell(0, 1, "old")
	m := New(g)
	m.Handle(PointerDown{Cell: at(0, 1)})
	assert.True(t, m.Handle(Input{Text: "=SUM(A1:A2)"}))
	assert.Equal(t, "=SUM(A1:A2)", g.Cell(0, 1))
	assert.False(t, m.Handle(Input{Text: "=SUM(A1:A2)"}), "unchanged content is not a mutation")
}

func TestSetHostClamps(t *testing.T) {
	m := New(grid.New(10, 10))
	m.Handle(PointerDown{Cell: at(8, 8)})
	m.Handle(PointerMove{Cell: at(9, 9)})

	m.SetHost(grid.New(4, 4))
	active, _ := m.Active()
	assert.Equal(t, at(3, 3), active)
	sel, _ := m.Selection()
	assert.Equal(t, models.Rect{Top: 3, Left: 3, Bottom: 3, Right: 3}, sel)
}

func TestReset(t *testing.T) {
	m := New(grid.New(3, 3))
	m.Handle(DoubleClick{Cell: at(1, 1)})
	m.Reset()
	assert.Equal(t, Idle, m.Mode())
	assert.Equal(t, "idle", m.Mode().String())
}
