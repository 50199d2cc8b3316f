package gsheets

import (
	"fmt"
	"strconv"
	"strings"
)

// gridRange is the Sheets API half-open 0-based range. Omitted bounds mean
// "unbounded" on that side, which the API expresses by leaving the field
// out; -1 marks that here.
type gridRange struct {
	startRow, endRow int // 0-based, endRow exclusive, -1 unbounded
	startCol, endCol int
}

// parseA1 parses "B4", "A1:ZZ", "2:2" or "O:O" into a gridRange.
func parseA1(a1 string) (gridRange, error) {
	g := gridRange{startRow: -1, endRow: -1, startCol: -1, endCol: -1}

	parts := strings.SplitN(a1, ":", 2)
	startCol, startRow, err := parseCell(parts[0])
	if err != nil {
		return g, fmt.Errorf("invalid range %q: %w", a1, err)
	}
	g.startCol, g.startRow = startCol, startRow
	if len(parts) == 1 {
		// single cell: the end bounds are the start bounds
		g.endCol, g.endRow = bound(startCol), bound(startRow)
		return g, nil
	}

	endCol, endRow, err := parseCell(parts[1])
	if err != nil {
		return g, fmt.Errorf("invalid range %q: %w", a1, err)
	}
	g.endCol, g.endRow = bound(endCol), bound(endRow)
	return g, nil
}

// bound converts a 0-based inclusive index into the exclusive end bound,
// keeping -1 as unbounded.
func bound(i int) int {
	if i < 0 {
		return -1
	}
	return i + 1
}

// parseCell splits one A1 cell reference into 0-based column and row
// indices; either may be absent (-1), as in "O" or "2".
func parseCell(cell string) (col, row int, err error) {
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		i++
	}
	letters, digits := cell[:i], cell[i:]

	col = -1
	if letters != "" {
		col = 0
		for _, c := range letters {
			col = col*26 + int(c-'A'+1)
		}
		col--
	}
	row = -1
	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			return -1, -1, fmt.Errorf("bad row in cell %q", cell)
		}
		row = n - 1
	}
	if letters == "" && digits == "" {
		return -1, -1, fmt.Errorf("empty cell reference")
	}
	return col, row, nil
}

// apiRange renders the gridRange as the JSON object the structural API
// expects, with the given sheet id.
func (g gridRange) apiRange(sheetID int64) map[string]any {
	out := map[string]any{"sheetId": sheetID}
	if g.startRow >= 0 {
		out["startRowIndex"] = g.startRow
	}
	if g.endRow >= 0 {
		out["endRowIndex"] = g.endRow
	}
	if g.startCol >= 0 {
		out["startColumnIndex"] = g.startCol
	}
	if g.endCol >= 0 {
		out["endColumnIndex"] = g.endCol
	}
	return out
}
