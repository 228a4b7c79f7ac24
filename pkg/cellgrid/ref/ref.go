// Package ref converts spreadsheet-style addresses ("B12") to zero-based
// coordinates and back, and expands ranges into ordered coordinate lists.
package ref

import (
	"regexp"
	"strings"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
	"github.com/xuri/excelize/v2"
)

// addressRE is the accepted address shape: letters, then a decimal row.
var addressRE = regexp.MustCompile(`^[A-Za-z]+[0-9]+$`)

// Parse decodes an address such as "B12" into {Row: 11, Col: 1}.
// It returns false for malformed input, row 0 and columns beyond XFD.
func Parse(addr string) (models.Coord, bool) {
	if !addressRE.MatchString(addr) {
		return models.Coord{}, false
	}
	col, row, err := excelize.CellNameToCoordinates(strings.ToUpper(addr))
	if err != nil {
		return models.Coord{}, false
	}
	return models.Coord{Row: row - 1, Col: col - 1}, true
}

// IsAddress reports whether s is a well-formed cell address.
func IsAddress(s string) bool {
	_, ok := Parse(s)
	return ok
}

// InBounds reports whether c lies within the largest sheet an address can
// name, XFD1048576.
func InBounds(c models.Coord) bool {
	return c.Valid() && c.Row < excelize.TotalRows && c.Col < excelize.MaxColumns
}

// Encode is the inverse of Parse. It returns "" for coordinates that have
// no address.
func Encode(c models.Coord) string {
	if !c.Valid() {
		return ""
	}
	name, err := excelize.CoordinatesToCellName(c.Col+1, c.Row+1)
	if err != nil {
		return ""
	}
	return name
}

// ColumnName returns the letters of a zero-based column ("A" for 0).
func ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return ""
	}
	return name
}
