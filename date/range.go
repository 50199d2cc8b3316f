package date

import "sort"

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the range [from, to], boundaries included.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains reports whether date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of days in the range, 0 if the range is inverted.
func (r Range) Days() int {
	n := 0
	for d := r.From; !d.After(r.To); d = d.Add(1) {
		n++
	}
	return n
}

// Sort returns a sorted copy of the given dates, ascending, duplicates removed.
func Sort(dates []Date) []Date {
	seen := make(map[Date]bool, len(dates))
	out := make([]Date, 0, len(dates))
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
