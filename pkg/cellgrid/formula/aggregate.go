package formula

import (
	"math"
	"regexp"
	"strings"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/ref"
)

var (
	aggregateRE = regexp.MustCompile(`(?i)^=\s*(SUM|AVG|MAX)\s*\(\s*([A-Z]+[0-9]+)\s*:\s*([A-Z]+[0-9]+)\s*\)\s*$`)
	concatRE    = regexp.MustCompile(`(?i)^=\s*CONCAT\s*\((.*)\)\s*$`)
)

// aggregate reduces the evaluated values of the range from:to. A range
// whose endpoints do not resolve is empty. Faulted cells coerce like any
// other non-numeric value.
func (e *Evaluator) aggregate(name, from, to string, st *stack) string {
	coords := ref.ExpandRange(from, to)
	values := make([]float64, 0, len(coords))
	for _, c := range coords {
		values = append(values, toNumber(e.cellValue(c.Row, c.Col, st).text))
	}

	switch strings.ToUpper(name) {
	case "SUM":
		return formatNumber(sum(values))
	case "AVG":
		if len(values) == 0 {
			return "0"
		}
		return formatNumber(sum(values) / float64(len(values)))
	default:
		return formatNumber(maxOf(values))
	}
}

// sum adds values, counting NaN as zero.
func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		if !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// maxOf returns the largest value. NaN propagates; an empty list is zero.
func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	out := values[0]
	for _, v := range values[1:] {
		out = math.Max(out, v)
	}
	return out
}

// concat joins the comma-separated arguments of CONCAT. Arguments are
// literal tokens: they are trimmed and unquoted but never evaluated.
func concat(args string) string {
	var b strings.Builder
	for _, arg := range strings.Split(args, ",") {
		b.WriteString(strings.Trim(strings.TrimSpace(arg), `"'`))
	}
	return b.String()
}
