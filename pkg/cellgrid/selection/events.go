package selection

import "github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"

// Event is an input delivered to Machine.Handle.
type Event interface {
	isEvent()
}

// PointerDown is a primary button press on a cell.
type PointerDown struct {
	Cell models.Coord
}

// PointerMove is pointer motion over a cell while a button may be held.
type PointerMove struct {
	Cell models.Coord
}

// PointerUp releases the primary button.
type PointerUp struct{}

// DoubleClick starts editing a cell.
type DoubleClick struct {
	Cell models.Coord
}

// KeyCode identifies a key that is not plain text.
type KeyCode uint8

const (
	// KeyRune is a printable character carried in Key.Rune.
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
)

// Key is a key press. Shift is the selection-extending modifier.
type Key struct {
	Code  KeyCode
	Rune  rune
	Shift bool
}

// ToggleStyle flips a binary style attribute over the selection.
type ToggleStyle struct {
	Attr models.StyleAttr
}

// SetColor sets the text colour of the selection. An empty colour removes
// the override.
type SetColor struct {
	Color string
}

// Paste writes a comma/line delimited block at the active cell.
type Paste struct {
	Text string
}

// Input replaces the content of the active cell, as a formula bar does.
type Input struct {
	Text string
}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (DoubleClick) isEvent() {}
func (Key) isEvent()         {}
func (ToggleStyle) isEvent() {}
func (SetColor) isEvent()    {}
func (Paste) isEvent()       {}
func (Input) isEvent()       {}
