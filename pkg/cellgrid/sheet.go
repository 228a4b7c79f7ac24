package cellgrid

import (
	"context"
	"fmt"

	"go.alis.build/alog"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/formula"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/grid"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/output"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/ref"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/selection"
)

// Sheet is one open sheet: its grid, evaluator and selection state.
// A Sheet is not safe for concurrent use.
type Sheet struct {
	opts Options

	grid *grid.Grid
	eval *formula.Evaluator
	sel  *selection.Machine

	listeners []func(models.Snapshot)
}

// New creates an empty sheet.
func New(opts Options) *Sheet {
	opts = opts.withDefaults()
	return newSheet(grid.New(opts.MinRows, opts.MinCols), opts)
}

func newSheet(g *grid.Grid, opts Options) *Sheet {
	return &Sheet{
		opts: opts,
		grid: g,
		eval: formula.New(g),
		sel:  selection.New(g),
	}
}

// OnChange registers fn to be called with the new snapshot after every
// mutation.
func (s *Sheet) OnChange(fn func(models.Snapshot)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Sheet) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.grid.Snapshot()
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// Bounds returns the current row and column counts.
func (s *Sheet) Bounds() (rows, cols int) { return s.grid.Bounds() }

// Version increases on every mutation.
func (s *Sheet) Version() uint64 { return s.grid.Version() }

// Get returns the raw content of a cell.
func (s *Sheet) Get(row, col int) string { return s.grid.Cell(row, col) }

// Style returns the style overrides of a cell.
func (s *Sheet) Style(row, col int) models.Style { return s.grid.Style(row, col) }

// Set writes raw content, growing the sheet if needed.
func (s *Sheet) Set(row, col int, content string) {
	before := s.grid.Version()
	s.grid.SetCell(row, col, content)
	if s.grid.Version() != before {
		s.notify()
	}
}

// SetAddress writes raw content at an address such as "B12".
func (s *Sheet) SetAddress(addr, content string) error {
	c, ok := ref.Parse(addr)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	s.Set(c.Row, c.Col, content)
	return nil
}

// Display returns the evaluated value of a cell.
func (s *Sheet) Display(row, col int) string {
	return s.eval.EvaluateAt(row, col)
}

// DisplayAddress returns the evaluated value at an address.
func (s *Sheet) DisplayAddress(addr string) (string, error) {
	c, ok := ref.Parse(addr)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return s.Display(c.Row, c.Col), nil
}

// DisplayRange evaluates every cell of r. Rows without any non-empty
// value are omitted.
func (s *Sheet) DisplayRange(r models.Rect) models.DisplayView {
	view := models.DisplayView{Range: ref.FormatRange(r)}
	for row := r.Top; row <= r.Bottom; row++ {
		values := make(map[string]string)
		for col := r.Left; col <= r.Right; col++ {
			if v := s.Display(row, col); v != "" {
				values[ref.ColumnName(col)] = v
			}
		}
		if len(values) > 0 {
			view.Rows = append(view.Rows, models.CellRow{R: row + 1, C: values})
		}
	}
	return view
}

// UsedRange returns the bounding box of non-empty cells.
func (s *Sheet) UsedRange() (models.Rect, bool) { return s.grid.UsedRange() }

// Selection exposes the selection/edit state.
func (s *Sheet) Selection() *selection.Machine { return s.sel }

// Dispatch feeds a host input event to the selection machine and reports
// whether the grid changed.
func (s *Sheet) Dispatch(ev selection.Event) bool {
	if !s.sel.Handle(ev) {
		return false
	}
	s.notify()
	return true
}

// Snapshot returns a copy of the grid and style map.
func (s *Sheet) Snapshot() models.Snapshot { return s.grid.Snapshot() }

// Serialize encodes the sheet as a compact JSON snapshot.
func (s *Sheet) Serialize() ([]byte, error) {
	return output.SnapshotToJSON(s.grid.Snapshot(), false)
}

// Replace swaps the whole grid for snap. The new grid is built completely
// before it becomes visible; the selection is clamped to its bounds.
func (s *Sheet) Replace(ctx context.Context, snap models.Snapshot) error {
	clone, err := snap.Clone()
	if err != nil {
		return fmt.Errorf("copy snapshot: %w", err)
	}
	s.setGrid(s.buildGrid(ctx, clone))
	s.notify()
	return nil
}

func (s *Sheet) setGrid(g *grid.Grid) {
	s.grid = g
	s.eval = formula.New(g)
	s.sel.SetHost(g)
}

func (s *Sheet) buildGrid(ctx context.Context, snap models.Snapshot) *grid.Grid {
	g, dropped := grid.FromSnapshot(snap, s.opts.MinRows, s.opts.MinCols)
	for _, key := range dropped {
		alog.Warnf(ctx, "cellgrid: dropping style with malformed or out-of-range key %q", key)
	}
	return g
}
