package finsheet

import (
	"github.com/hgabor/finsheet/date"
)

// Axis is the reconciled date axis: the sorted union of the sheet's dates
// and the fetched dates, with an updated row mapping.
type Axis struct {
	// Dates is the full sorted union.
	Dates []date.Date
	// Rows maps every date of the union to its 1-based sheet row.
	Rows map[date.Date]int
	// NewDates are the fetched dates that were not on the sheet, ascending.
	NewDates []date.Date
	// RequiredRows is the physical row count the sheet must be grown to
	// before any cell write references a row beyond the old bound.
	RequiredRows int
}

// Reconcile merges the fetched dates into the matrix's date axis. Dates
// already on the sheet keep their rows; each new date is assigned the row
// of its sort position, and previously mapped dates at or below an
// insertion point shift down by the number of dates inserted above them.
func Reconcile(m *Matrix, ps PriceSet) *Axis {
	rows := make(map[date.Date]int, len(m.Rows))
	for d, r := range m.Rows {
		rows[d] = r
	}

	var newDates []date.Date
	for _, d := range ps.Dates() {
		if _, mapped := rows[d]; !mapped {
			newDates = append(newDates, d)
		}
	}
	if len(newDates) == 0 {
		// Nothing moves; values merge into existing rows.
		return &Axis{Dates: m.Dates, Rows: rows}
	}

	union := date.Sort(append(append([]date.Date{}, m.Dates...), newDates...))
	position := make(map[date.Date]int, len(union))
	for i, d := range union {
		position[d] = i
	}

	for _, d := range newDates {
		insertAt := position[d] + firstDataRow
		for mapped, row := range rows {
			if row >= insertAt {
				rows[mapped] = row + 1
			}
		}
		rows[d] = insertAt
	}

	return &Axis{
		Dates:        union,
		Rows:         rows,
		NewDates:     newDates,
		RequiredRows: headerRows + len(union),
	}
}
