package xlsx

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.alis.build/alog"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/formula"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/grid"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/ref"
)

// DefaultSheetName is the worksheet name used when none is given.
const DefaultSheetName = "Sheet1"

// ExportOptions controls workbook output.
type ExportOptions struct {
	// Sheet is the worksheet name. Empty means DefaultSheetName.
	Sheet string
	// Values writes evaluated values instead of formulas.
	Values bool
}

// ExportFile writes snap as a single-sheet workbook at path.
func ExportFile(ctx context.Context, path string, snap models.Snapshot, opts ExportOptions) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Export(ctx, out, snap, opts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Export writes snap as a single-sheet workbook to w.
func Export(ctx context.Context, w io.Writer, snap models.Snapshot, opts ExportOptions) error {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()
	if sheet != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheet); err != nil {
			return sheetError(sheet, "export", err)
		}
	}

	g, dropped := grid.FromSnapshot(snap, 0, 0)
	for _, key := range dropped {
		alog.Warnf(ctx, "xlsx: skipping style with malformed key %q", key)
	}
	ev := formula.New(g)

	used, hasContent := g.UsedRange()
	bottom, right := -1, -1
	if hasContent {
		bottom, right = used.Bottom, used.Right
		for c := range used.Cells() {
			content := g.Cell(c.Row, c.Col)
			if content == "" {
				continue
			}
			if opts.Values && formula.IsFormula(content) {
				content = ev.EvaluateAt(c.Row, c.Col)
			}
			if err := writeCell(f, sheet, ref.Encode(c), content); err != nil {
				return sheetError(sheet, "export", err)
			}
		}
	}

	styleIDs := make(map[models.Style]int)
	styled := 0
	for key, st := range snap.Styles {
		c, ok := models.ParseCellKey(key)
		if !ok || st.IsZero() {
			continue
		}
		id, ok := styleIDs[st]
		if !ok {
			var err error
			if id, err = f.NewStyle(&excelize.Style{Font: toFont(ctx, st)}); err != nil {
				return sheetError(sheet, "export", err)
			}
			styleIDs[st] = id
		}
		name := ref.Encode(c)
		if err := f.SetCellStyle(sheet, name, name, id); err != nil {
			return sheetError(sheet, "export", err)
		}
		bottom, right = max(bottom, c.Row), max(right, c.Col)
		styled++
	}

	if bottom >= 0 {
		dim := ref.FormatRange(models.Rect{Bottom: bottom, Right: right})
		if err := f.SetSheetDimension(sheet, dim); err != nil {
			return sheetError(sheet, "export", err)
		}
	}

	cells := 0
	if hasContent {
		cells = g.CountNonEmpty(used)
	}
	alog.Debugf(ctx, "xlsx: exporting sheet %q: %d cells, %d styled cells, %d styles", sheet, cells, styled, len(styleIDs))

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// writeCell stores formulas as formulas, canonical numbers as numbers and
// everything else as text, so raw content reads back unchanged.
func writeCell(f *excelize.File, sheet, name, content string) error {
	if formula.IsFormula(content) && len(content) > 1 {
		return f.SetCellFormula(sheet, name, strings.TrimPrefix(content, "="))
	}
	if n, err := strconv.ParseFloat(content, 64); err == nil && strconv.FormatFloat(n, 'f', -1, 64) == content {
		return f.SetCellFloat(sheet, name, n, -1, 64)
	}
	return f.SetCellStr(sheet, name, content)
}

func toFont(ctx context.Context, st models.Style) *excelize.Font {
	font := &excelize.Font{Bold: st.Bold, Italic: st.Italic}
	if st.Underline {
		font.Underline = "single"
	}
	if st.Color != "" {
		if hexColorRE.MatchString(st.Color) {
			font.Color = strings.ToUpper(strings.TrimPrefix(st.Color, "#"))
		} else {
			alog.Warnf(ctx, "xlsx: color %q is not #rrggbb, writing the default font color", st.Color)
		}
	}
	return font
}
