package finsheet

import (
	"log"

	"github.com/hgabor/finsheet/date"
)

// Matrix is the in-memory view of the price worksheet: an ordered date axis
// with its row mapping, and the ticker column mapping. It is rebuilt from
// the sheet on every run, never cached.
type Matrix struct {
	// Dates is the ordered date axis, ascending and unique.
	Dates []date.Date
	// Rows maps each date to its 1-based sheet row.
	Rows map[date.Date]int
	// Cols maps each ticker to its 1-based sheet column.
	Cols map[string]int

	// lastRow records, per ticker, the deepest populated row of its column.
	// Columns may be backfilled to different depths, so this is per column,
	// not the sheet's last row. Captured from the same single range read
	// the axis comes from.
	lastRow map[string]int
}

// ParseMatrix rebuilds the matrix from the raw cell grid of the worksheet.
// A fully blank grid is a valid first-sync state and yields an empty matrix.
// Cells that fail date normalization are skipped with a warning; they never
// abort the parse.
func ParseMatrix(grid [][]string) *Matrix {
	m := &Matrix{
		Rows:    make(map[date.Date]int),
		Cols:    make(map[string]int),
		lastRow: make(map[string]int),
	}

	// Tickers on row 1, first column reserved for dates.
	if len(grid) > 0 {
		header := grid[0]
		for i := firstTickerCol - 1; i < len(header); i++ {
			if ticker := header[i]; ticker != "" {
				m.Cols[ticker] = i + 1
			}
		}
	}

	// Dates in column A from the first data row down. Empty cells are
	// skipped, not treated as values.
	for i := firstDataRow - 1; i < len(grid); i++ {
		row := grid[i]
		if len(row) == 0 || row[dateCol-1] == "" {
			continue
		}
		d, err := ParseSheetDate(row[dateCol-1])
		if err != nil {
			log.Printf("warning: row %d: %v", i+1, err)
			continue
		}
		if _, dup := m.Rows[d]; dup {
			log.Printf("warning: row %d: duplicate date %s, keeping first", i+1, d)
			continue
		}
		m.Dates = append(m.Dates, d)
		m.Rows[d] = i + 1
	}

	// Deepest populated cell per ticker column.
	for ticker, col := range m.Cols {
		for i := len(grid) - 1; i >= firstDataRow-1; i-- {
			row := grid[i]
			if col-1 < len(row) && row[col-1] != "" {
				m.lastRow[ticker] = i + 1
				break
			}
		}
	}
	return m
}

// FirstDate returns the first date of the axis, ok is false on an empty
// matrix.
func (m *Matrix) FirstDate() (date.Date, bool) {
	if len(m.Dates) == 0 {
		return date.Date{}, false
	}
	return m.Dates[0], true
}

// LastPopulated returns the date of the deepest populated cell in the
// ticker's column, ok is false when the column has no populated data cell.
func (m *Matrix) LastPopulated(ticker string) (date.Date, bool) {
	row, ok := m.lastRow[ticker]
	if !ok || row < firstDataRow {
		return date.Date{}, false
	}
	for _, d := range m.Dates {
		if m.Rows[d] == row {
			return d, true
		}
	}
	return date.Date{}, false
}
