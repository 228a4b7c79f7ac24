package xlsx

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrEmptyWorkbook indicates a workbook without any worksheet.
var ErrEmptyWorkbook = errors.New("workbook has no sheets")

// SheetError represents a failure while reading or writing one worksheet.
type SheetError struct {
	Sheet string
	Op    string // "open", "import", "export"
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("xlsx %s error in sheet %q: %v", e.Op, e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

func sheetError(sheet, op string, err error) *SheetError {
	return &SheetError{Sheet: sheet, Op: op, Err: err}
}
