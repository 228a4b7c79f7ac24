// Package formula evaluates cell contents: literals, the SUM/AVG/MAX/CONCAT
// functions and inline arithmetic over cell references.
//
// Faults never surface as Go errors. A formula that cannot be computed
// displays one of the sentinel values below and the raw content of the
// cell is left untouched.
package formula

import "strings"

const (
	// ErrorValue is displayed for unsafe or invalid arithmetic.
	ErrorValue = "#ERROR"
	// CircularValue is displayed for a formula that depends on itself.
	CircularValue = "#CIRCULAR"
)

// IsFormula reports whether content is evaluated rather than displayed
// literally. Leading whitespace disqualifies a formula.
func IsFormula(content string) bool {
	return strings.HasPrefix(content, "=")
}
