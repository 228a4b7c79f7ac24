package cellgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.alis.build/alog"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/grid"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
)

// Load builds a sheet from serialized content: a JSON snapshot object, or
// the legacy comma/line delimited text form. Empty content yields an empty
// sheet. Content that starts like JSON but does not parse is read as
// legacy text.
func Load(ctx context.Context, data []byte, opts Options) (*Sheet, error) {
	opts = opts.withDefaults()
	s := newSheet(grid.New(opts.MinRows, opts.MinCols), opts)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		alog.Debugf(ctx, "cellgrid: empty content, starting a fresh %dx%d sheet", opts.MinRows, opts.MinCols)
		return s, nil
	}

	if trimmed[0] == '{' {
		snap, err := decodeSnapshot(trimmed)
		var syntaxErr *json.SyntaxError
		switch {
		case err == nil:
			if !hasSnapshotFields(trimmed) {
				alog.Warnf(ctx, "cellgrid: JSON object has neither %q nor %q, loading an empty sheet", "grid", "styles")
			}
			s.setGrid(s.buildGrid(ctx, snap))
			rows, cols := s.Bounds()
			alog.Debugf(ctx, "cellgrid: loaded snapshot %dx%d with %d styled cells", rows, cols, s.grid.StyleCount())
			return s, nil
		case errors.As(err, &syntaxErr):
			alog.Warnf(ctx, "cellgrid: content is not valid JSON (%v), reading it as legacy text", err)
		default:
			return nil, &LoadError{Format: "snapshot", Err: err}
		}
	}

	s.setGrid(s.buildGrid(ctx, models.Snapshot{Grid: grid.ParseLegacy(string(data))}))
	rows, cols := s.Bounds()
	alog.Debugf(ctx, "cellgrid: loaded legacy text %dx%d", rows, cols)
	return s, nil
}

// decodeSnapshot reads a snapshot object. Syntax errors are returned as
// *json.SyntaxError; any other failure wraps ErrInvalidSnapshot.
func decodeSnapshot(data []byte) (models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return models.Snapshot{}, err
		}
		return models.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return snap, nil
}

// hasSnapshotFields reports whether the object names a grid or styles
// field, matched without regard to case as the decoder does.
func hasSnapshotFields(data []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	for name := range fields {
		if strings.EqualFold(name, "grid") || strings.EqualFold(name, "styles") {
			return true
		}
	}
	return false
}
