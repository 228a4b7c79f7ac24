package models

// Style is the sparse set of presentation overrides of one cell.
type Style struct {
	// Bold renders the cell in bold.
	Bold bool `json:"bold,omitempty"`
	// Italic renders the cell in italics.
	Italic bool `json:"italic,omitempty"`
	// Underline underlines the cell text.
	Underline bool `json:"underline,omitempty"`
	// Color is the text colour, e.g. "#c00000". Empty means default.
	Color string `json:"color,omitempty"`
}

// IsZero reports whether s carries no overrides.
func (s Style) IsZero() bool {
	return s == Style{}
}

// StyleAttr names a binary style attribute.
type StyleAttr string

const (
	// AttrBold is the bold attribute.
	AttrBold StyleAttr = "bold"
	// AttrItalic is the italic attribute.
	AttrItalic StyleAttr = "italic"
	// AttrUnderline is the underline attribute.
	AttrUnderline StyleAttr = "underline"
)

// Get returns the value of attr in s.
func (s Style) Get(attr StyleAttr) bool {
	switch attr {
	case AttrBold:
		return s.Bold
	case AttrItalic:
		return s.Italic
	case AttrUnderline:
		return s.Underline
	}
	return false
}

// With returns a copy of s with attr set to on.
func (s Style) With(attr StyleAttr, on bool) Style {
	switch attr {
	case AttrBold:
		s.Bold = on
	case AttrItalic:
		s.Italic = on
	case AttrUnderline:
		s.Underline = on
	}
	return s
}
