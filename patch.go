package finsheet

import (
	"log"
	"sort"

	"github.com/hgabor/finsheet/date"
)

// Patch is the complete set of sheet mutations a run produces: capacity
// growth, structural column provisioning, and the batched cell writes.
// Ranges never overlap; a cell is written at most once per run.
type Patch struct {
	// RequiredRows and RequiredCols are the physical grid capacity every
	// write fits into. They must be ensured before Copies and Writes.
	RequiredRows int
	RequiredCols int
	// Copies provision formula rows 2-3 of newly allocated ticker columns
	// from an existing column. Structural, not price writes.
	Copies []CopyOp
	// Writes are the cell value updates, applied in one batched call.
	Writes []CellWrite
}

// CopyOp copies the cell range Src onto the anchor cell Dst.
type CopyOp struct{ Src, Dst string }

// Empty reports whether the patch would not change the sheet.
func (p *Patch) Empty() bool { return len(p.Writes) == 0 && len(p.Copies) == 0 }

// BuildPatch turns the reconciled axis and the fetched prices into the
// minimal patch. New tickers are allocated the next unused columns (the
// matrix column mapping is extended in place), get a header write and a
// formula-row copy from the last pre-existing column. Price cells resolve
// their row through the axis; a date cell is written only for dates new to
// the axis. Unmapped dates or columns are a logic bug upstream: they are
// skipped with a warning, never written as blank.
func BuildPatch(p *Plan, ps PriceSet, m *Matrix, axis *Axis) *Patch {
	patch := &Patch{RequiredRows: axis.RequiredRows}

	lastCol := 0
	for _, col := range m.Cols {
		if col > lastCol {
			lastCol = col
		}
	}
	formulaSrcCol := lastCol // last pre-existing ticker column, if any

	// Allocate columns for new tickers and provision them.
	for _, ticker := range p.New {
		if lastCol < dateCol {
			lastCol = dateCol
		}
		lastCol++
		m.Cols[ticker] = lastCol
		patch.Writes = append(patch.Writes, CellWrite{Range: A1(tickerRow, lastCol), Value: ticker})
		if formulaSrcCol >= firstTickerCol {
			patch.Copies = append(patch.Copies, CopyOp{
				Src: A1(tickerRow+1, formulaSrcCol) + ":" + A1(headerRows, formulaSrcCol),
				Dst: A1(tickerRow+1, lastCol),
			})
		}
	}
	patch.RequiredCols = lastCol

	newDate := make(map[date.Date]bool, len(axis.NewDates))
	for _, d := range axis.NewDates {
		newDate[d] = true
	}
	dateWritten := make(map[date.Date]bool)

	tickers := make([]string, 0, len(ps))
	for ticker := range ps {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		col, ok := m.Cols[ticker]
		if !ok {
			log.Printf("warning: ticker %s has no column, skipping its prices", ticker)
			continue
		}
		for _, d := range date.Sort(keys(ps[ticker])) {
			row, ok := axis.Rows[d]
			if !ok {
				log.Printf("warning: date %s not on the reconciled axis, skipping %s", d, ticker)
				continue
			}
			if newDate[d] && !dateWritten[d] {
				dateWritten[d] = true
				patch.Writes = append(patch.Writes, CellWrite{Range: A1(row, dateCol), Value: FormatSheetDate(d)})
			}
			patch.Writes = append(patch.Writes, CellWrite{Range: A1(row, col), Value: ps[ticker][d]})
		}
	}
	return patch
}

func keys[V any](m map[date.Date]V) []date.Date {
	out := make([]date.Date, 0, len(m))
	for d := range m {
		out = append(out, d)
	}
	return out
}
