// Package xlsx moves sheet snapshots in and out of Office Open XML
// workbooks. Raw content (formulas included) and font styles survive a
// round trip; other workbook features are ignored.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.alis.build/alog"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/ref"
)

// hexColorRE matches an RGB colour with or without the leading '#'.
var hexColorRE = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// ImportOptions selects what to read from a workbook.
type ImportOptions struct {
	// Sheet is the worksheet name. Empty means the first sheet.
	Sheet string
}

// ImportFile reads a snapshot from the workbook at path.
func ImportFile(ctx context.Context, path string, opts ImportOptions) (models.Snapshot, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return importFrom(ctx, f, opts)
}

// Import reads a snapshot from a workbook stream.
func Import(ctx context.Context, r io.Reader, opts ImportOptions) (models.Snapshot, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return importFrom(ctx, f, opts)
}

func importFrom(ctx context.Context, f *excelize.File, opts ImportOptions) (models.Snapshot, error) {
	sheet, err := resolveSheet(f, opts.Sheet)
	if err != nil {
		return models.Snapshot{}, err
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Snapshot{}, sheetError(sheet, "import", err)
	}
	height, width := extent(ctx, f, sheet, rows)

	snap := models.Snapshot{
		Grid:   make([][]string, height),
		Styles: make(map[models.CellKey]models.Style),
	}
	fonts := make(map[int]models.Style)
	for r := 0; r < height; r++ {
		snap.Grid[r] = make([]string, width)
		for c := 0; c < width; c++ {
			coord := models.Coord{Row: r, Col: c}
			name := ref.Encode(coord)

			content, err := cellContent(f, sheet, name, rows, coord)
			if err != nil {
				return models.Snapshot{}, sheetError(sheet, "import", err)
			}
			snap.Grid[r][c] = content

			st, err := cellStyle(f, sheet, name, fonts)
			if err != nil {
				return models.Snapshot{}, sheetError(sheet, "import", err)
			}
			if !st.IsZero() {
				snap.Styles[models.KeyOf(coord)] = st
			}
		}
	}

	alog.Debugf(ctx, "xlsx: imported sheet %q: %dx%d, %d styled cells", sheet, height, width, len(snap.Styles))
	return snap, nil
}

// resolveSheet maps a requested name onto the workbook's sheet list.
func resolveSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrEmptyWorkbook
	}
	if name == "" {
		return sheets[0], nil
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 || idx >= len(sheets) {
		return "", sheetError(name, "open", ErrSheetNotFound)
	}
	return sheets[idx], nil
}

// extent is the larger of the rows holding values and the declared
// worksheet dimension. Formula cells without a cached value are only
// covered by the latter.
func extent(ctx context.Context, f *excelize.File, sheet string, rows [][]string) (height, width int) {
	height = len(rows)
	for _, row := range rows {
		width = max(width, len(row))
	}

	dim, err := f.GetSheetDimension(sheet)
	if err != nil || dim == "" {
		return height, width
	}
	r, ok := ref.ParseRange(dim)
	if !ok {
		alog.Warnf(ctx, "xlsx: ignoring malformed dimension %q of sheet %q", dim, sheet)
		return height, width
	}
	return max(height, r.Bottom+1), max(width, r.Right+1)
}

func cellContent(f *excelize.File, sheet, name string, rows [][]string, c models.Coord) (string, error) {
	formula, err := f.GetCellFormula(sheet, name)
	if err != nil {
		return "", err
	}
	if formula != "" {
		return "=" + strings.TrimPrefix(formula, "="), nil
	}
	if c.Row < len(rows) && c.Col < len(rows[c.Row]) {
		return rows[c.Row][c.Col], nil
	}
	return "", nil
}

// cellStyle reads the font overrides of a cell. Converted styles are
// cached by style index.
func cellStyle(f *excelize.File, sheet, name string, cache map[int]models.Style) (models.Style, error) {
	idx, err := f.GetCellStyle(sheet, name)
	if err != nil || idx == 0 {
		return models.Style{}, err
	}
	if st, ok := cache[idx]; ok {
		return st, nil
	}
	xs, err := f.GetStyle(idx)
	if err != nil {
		return models.Style{}, err
	}
	st := fromFont(xs.Font)
	cache[idx] = st
	return st, nil
}

func fromFont(font *excelize.Font) models.Style {
	if font == nil {
		return models.Style{}
	}
	st := models.Style{
		Bold:      font.Bold,
		Italic:    font.Italic,
		Underline: font.Underline != "" && font.Underline != "none",
	}
	if color := strings.TrimPrefix(font.Color, "#"); len(color) == 8 {
		// ARGB
		st.Color = normalizeColor(color[2:])
	} else {
		st.Color = normalizeColor(color)
	}
	return st
}

// normalizeColor renders a hex colour as "#rrggbb", or "" when it is not
// six hex digits.
func normalizeColor(c string) string {
	if !hexColorRE.MatchString(c) {
		return ""
	}
	return "#" + strings.ToLower(strings.TrimPrefix(c, "#"))
}
