package gsheets

import (
	"fmt"
	"net/http"

	"github.com/hgabor/finsheet"
)

// Worksheet is one tab of a spreadsheet. It implements finsheet.GridSheet.
// The grid size is tracked locally so Ensure calls only hit the API when
// the sheet actually has to grow.
type Worksheet struct {
	sp      *Spreadsheet
	title   string
	sheetID int64
	rows    int
	cols    int
}

var _ finsheet.GridSheet = (*Worksheet)(nil)

// Title returns the worksheet title.
func (w *Worksheet) Title() string { return w.title }

// ReadRange returns the formatted cell text of the A1 range, row-major.
// The API omits trailing empty rows and cells; callers handle that.
func (w *Worksheet) ReadRange(a1 string) ([][]string, error) {
	var payload struct {
		Values [][]any `json:"values"`
	}
	addr := w.sp.rangeURL(w.title, a1, "")
	if err := w.sp.call(http.MethodGet, addr, nil, &payload); err != nil {
		return nil, fmt.Errorf("cannot read range %s of %q: %w", a1, w.title, err)
	}
	grid := make([][]string, len(payload.Values))
	for i, row := range payload.Values {
		grid[i] = make([]string, len(row))
		for j, cell := range row {
			grid[i][j] = fmt.Sprint(cell)
		}
	}
	return grid, nil
}

// BatchUpdate applies all writes in one values:batchUpdate call, with
// USER_ENTERED input so dates and numbers parse the way a typing user's
// would.
func (w *Worksheet) BatchUpdate(writes []finsheet.CellWrite) error {
	if len(writes) == 0 {
		return nil
	}
	data := make([]map[string]any, 0, len(writes))
	for _, wr := range writes {
		data = append(data, map[string]any{
			"range":  w.title + "!" + wr.Range,
			"values": wrapValues(wr.Value),
		})
	}
	body := map[string]any{
		"valueInputOption": "USER_ENTERED",
		"data":             data,
	}
	addr := fmt.Sprintf("%s/%s/values:batchUpdate", w.sp.base, w.sp.id)
	if err := w.sp.call(http.MethodPost, addr, body, nil); err != nil {
		return fmt.Errorf("batch update of %q failed: %w", w.title, err)
	}
	return nil
}

// wrapValues lifts a CellWrite value into the [][]any block the API wants:
// a single cell, one []any row, or a [][]any block pass through.
func wrapValues(v any) [][]any {
	switch val := v.(type) {
	case [][]any:
		return val
	case []any:
		return [][]any{val}
	default:
		return [][]any{{val}}
	}
}

// EnsureRows grows the sheet to at least n rows. No-op when it is already
// that tall.
func (w *Worksheet) EnsureRows(n int) error {
	if w.rows >= n {
		return nil
	}
	return w.resize(n, w.cols)
}

// EnsureCols grows the sheet to at least n columns.
func (w *Worksheet) EnsureCols(n int) error {
	if w.cols >= n {
		return nil
	}
	return w.resize(w.rows, n)
}

// Resize sets the exact grid size.
func (w *Worksheet) Resize(rows, cols int) error {
	return w.resize(rows, cols)
}

func (w *Worksheet) resize(rows, cols int) error {
	req := map[string]any{"updateSheetProperties": map[string]any{
		"properties": map[string]any{
			"sheetId":        w.sheetID,
			"gridProperties": map[string]any{"rowCount": rows, "columnCount": cols},
		},
		"fields": "gridProperties.rowCount,gridProperties.columnCount",
	}}
	if err := w.sp.structural(nil, req); err != nil {
		return fmt.Errorf("cannot resize %q to %dx%d: %w", w.title, rows, cols, err)
	}
	w.rows, w.cols = rows, cols
	return nil
}

// CopyRange copies src (values and formulas) onto the dst anchor cell.
func (w *Worksheet) CopyRange(src, dst string) error {
	srcRange, err := parseA1(src)
	if err != nil {
		return err
	}
	dstRange, err := parseA1(dst)
	if err != nil {
		return err
	}
	req := map[string]any{"copyPaste": map[string]any{
		"source":      srcRange.apiRange(w.sheetID),
		"destination": dstRange.apiRange(w.sheetID),
		"pasteType":   "PASTE_NORMAL",
	}}
	if err := w.sp.structural(nil, req); err != nil {
		return fmt.Errorf("cannot copy %s to %s on %q: %w", src, dst, w.title, err)
	}
	return nil
}

// LastNonEmptyRow returns the 1-based row of the deepest populated cell in
// the column, 0 when the column is empty.
func (w *Worksheet) LastNonEmptyRow(col int) (int, error) {
	letter := colName(col)
	grid, err := w.ReadRange(letter + ":" + letter)
	if err != nil {
		return 0, err
	}
	for i := len(grid) - 1; i >= 0; i-- {
		if len(grid[i]) > 0 && grid[i][0] != "" {
			return i + 1, nil
		}
	}
	return 0, nil
}

// Clear blanks every value on the worksheet. Formatting stays.
func (w *Worksheet) Clear() error {
	addr := w.sp.rangeURL(w.title, "", ":clear")
	if err := w.sp.call(http.MethodPost, addr, struct{}{}, nil); err != nil {
		return fmt.Errorf("cannot clear %q: %w", w.title, err)
	}
	return nil
}

// Merge merges the cells of the A1 range into one.
func (w *Worksheet) Merge(a1 string) error {
	g, err := parseA1(a1)
	if err != nil {
		return err
	}
	req := map[string]any{"mergeCells": map[string]any{
		"range":     g.apiRange(w.sheetID),
		"mergeType": "MERGE_ALL",
	}}
	if err := w.sp.structural(nil, req); err != nil {
		return fmt.Errorf("cannot merge %s on %q: %w", a1, w.title, err)
	}
	return nil
}

// UnmergeRows dissolves all merges intersecting the row range ("2:2").
func (w *Worksheet) UnmergeRows(rowRange string) error {
	g, err := parseA1(rowRange)
	if err != nil {
		return err
	}
	req := map[string]any{"unmergeCells": map[string]any{
		"range": g.apiRange(w.sheetID),
	}}
	if err := w.sp.structural(nil, req); err != nil {
		return fmt.Errorf("cannot unmerge %s on %q: %w", rowRange, w.title, err)
	}
	return nil
}

// HideRows hides the half-open 0-based row interval [start, end).
func (w *Worksheet) HideRows(start, end int) error {
	req := map[string]any{"updateDimensionProperties": map[string]any{
		"range": map[string]any{
			"sheetId":    w.sheetID,
			"dimension":  "ROWS",
			"startIndex": start,
			"endIndex":   end,
		},
		"properties": map[string]any{"hiddenByUser": true},
		"fields":     "hiddenByUser",
	}}
	if err := w.sp.structural(nil, req); err != nil {
		return fmt.Errorf("cannot hide rows %d:%d on %q: %w", start, end, w.title, err)
	}
	return nil
}

// colName returns the column letters of a 1-based column index.
func colName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
