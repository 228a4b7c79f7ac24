// Package cellgrid is a spreadsheet cell-evaluation engine: a growable
// grid of raw cell contents with per-cell styles, a small formula language
// evaluated on read, and a selection/edit state machine driven by host
// input events.
package cellgrid

import "dario.cat/mergo"

const (
	// DefaultMinRows is the minimum row count of a sheet.
	DefaultMinRows = 40
	// DefaultMinCols is the minimum column count of a sheet.
	DefaultMinCols = 26
)

// Options configures sheet creation and loading.
type Options struct {
	// MinRows is the minimum number of rows. Zero means DefaultMinRows.
	MinRows int
	// MinCols is the minimum number of columns. Zero means DefaultMinCols.
	MinCols int
}

// DefaultOptions returns default sheet options.
func DefaultOptions() Options {
	return Options{
		MinRows: DefaultMinRows,
		MinCols: DefaultMinCols,
	}
}

// withDefaults fills unset fields from DefaultOptions.
func (o Options) withDefaults() Options {
	o.MinRows = max(o.MinRows, 0)
	o.MinCols = max(o.MinCols, 0)
	if err := mergo.Merge(&o, DefaultOptions()); err != nil {
		return DefaultOptions()
	}
	return o
}
