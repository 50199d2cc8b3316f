package finsheet

import "errors"

// ErrWorksheetNotFound reports a missing worksheet on Workbook lookup.
var ErrWorksheetNotFound = errors.New("worksheet not found")

// Fixed layout of the price matrix worksheet: tickers on row 1 starting at
// column B, rows 2 and 3 reserved for per-column formulas, dates in column A
// from row 4 down.
const (
	tickerRow      = 1
	headerRows     = 3
	firstDataRow   = headerRows + 1
	dateCol        = 1
	firstTickerCol = 2
)

// matrixRange is the range read once per run to rebuild the matrix.
const matrixRange = "A1:ZZ"

// CellWrite is a single value-range update. Value is one cell value, a
// []any row, or a [][]any block of rows.
type CellWrite struct {
	Range string
	Value any
}

// Sheet is the worksheet surface the sync engine needs. Implementations are
// expected to issue one remote round trip per call; the engine keeps the
// call count minimal on its own.
type Sheet interface {
	// ReadRange returns the raw cell text of an A1 range, row-major.
	// Trailing empty rows and cells may be absent.
	ReadRange(a1 string) ([][]string, error)
	// BatchUpdate applies all writes in one call. Ranges may be
	// non-contiguous.
	BatchUpdate(writes []CellWrite) error
	// EnsureRows grows the worksheet to at least n physical rows.
	EnsureRows(n int) error
	// EnsureCols grows the worksheet to at least n physical columns.
	EnsureCols(n int) error
	// CopyRange copies a cell range (values and formulas) to a destination
	// anchor cell.
	CopyRange(src, dst string) error
	// LastNonEmptyRow returns the 1-based row of the last populated cell in
	// the given column, or 0 if the column is empty.
	LastNonEmptyRow(col int) (int, error)
}

// GridSheet extends Sheet with the structural operations the budget tab
// writers use.
type GridSheet interface {
	Sheet
	Clear() error
	Resize(rows, cols int) error
	Merge(a1 string) error
	UnmergeRows(rowRange string) error
	// HideRows hides the half-open 0-based row interval [start, end).
	HideRows(start, end int) error
}

// Workbook provides worksheet lookup and creation on a spreadsheet.
type Workbook interface {
	// Worksheet returns the named worksheet, or an error wrapping
	// ErrWorksheetNotFound when it does not exist.
	Worksheet(title string) (GridSheet, error)
	AddWorksheet(title string, rows, cols int) (GridSheet, error)
}
