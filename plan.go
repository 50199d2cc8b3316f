package finsheet

import (
	"sort"

	"github.com/hgabor/finsheet/date"
)

// defaultWindowDays is the synthetic backfill window used when the sheet is
// completely blank: the first sync pulls one year of history.
const defaultWindowDays = 365

// Plan partitions the held tickers into new and already-tracked ones and
// records, per ticker, the earliest date fresh data must be fetched from.
type Plan struct {
	New      []string
	Existing []string
	Start    map[string]date.Date
}

// BuildPlan derives the fetch plan for the given holdings against the
// current matrix, as of today.
func BuildPlan(h Holdings, m *Matrix, today date.Date) *Plan {
	p := &Plan{Start: make(map[string]date.Date)}

	first, hasDates := m.FirstDate()
	if !hasDates {
		first = today.Add(-defaultWindowDays)
	}

	for _, ticker := range h.Tickers() {
		if _, tracked := m.Cols[ticker]; !tracked {
			p.New = append(p.New, ticker)
			p.Start[ticker] = first
			continue
		}
		p.Existing = append(p.Existing, ticker)
		// The start is the day after the last populated cell of that
		// ticker's own column, not the sheet's last row: columns may be
		// backfilled to different depths.
		if last, ok := m.LastPopulated(ticker); ok {
			p.Start[ticker] = last.Add(1)
		} else {
			p.Start[ticker] = first
		}
	}
	return p
}

// Tickers returns the union of new and existing tickers, sorted.
func (p *Plan) Tickers() []string {
	all := make([]string, 0, len(p.New)+len(p.Existing))
	all = append(all, p.New...)
	all = append(all, p.Existing...)
	sort.Strings(all)
	return all
}

// Earliest returns the minimum start date across all tickers. ok is false
// on an empty plan.
func (p *Plan) Earliest() (date.Date, bool) {
	var min date.Date
	found := false
	for _, start := range p.Start {
		if !found || start.Before(min) {
			min = start
			found = true
		}
	}
	return min, found
}

// Stale reports whether anything needs fetching as of today. A plan whose
// earliest start is after today short-circuits the run: nothing is stale.
func (p *Plan) Stale(today date.Date) bool {
	earliest, ok := p.Earliest()
	return ok && !earliest.After(today)
}
