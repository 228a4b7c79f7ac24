package grid

import "strings"

// ParseLegacy reads the flat delimited form older sheets were stored in:
// one row per line, one cell per comma-separated field, no quoting.
func ParseLegacy(text string) [][]string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(strings.TrimSuffix(line, "\r"), ",")
	}
	return rows
}

// FormatLegacy writes cells in the flat delimited form. Trailing empty rows
// are omitted. Content containing commas or newlines does not round-trip.
func FormatLegacy(cells [][]string) string {
	last := -1
	for i, row := range cells {
		for _, cell := range row {
			if cell != "" {
				last = i
				break
			}
		}
	}
	lines := make([]string, last+1)
	for i := 0; i <= last; i++ {
		lines[i] = strings.Join(cells[i], ",")
	}
	return strings.Join(lines, "\n")
}
