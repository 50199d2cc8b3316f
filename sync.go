package finsheet

import (
	"fmt"
	"log"

	"github.com/hgabor/finsheet/date"
)

// Outcome is the terminal state of a sync run. Skipped is a normal outcome,
// not a failure: it means the sheet already holds everything the provider
// has.
type Outcome string

const (
	Applied Outcome = "applied"
	Skipped Outcome = "skipped"
)

// Report summarizes one sync run.
type Report struct {
	Outcome    Outcome
	NewTickers []string
	NewDates   []date.Date
	Writes     int
}

// Syncer drives one price sync run: read the sheet once, plan, fetch,
// reconcile, and write back at most one batched patch. It is synchronous
// and keeps no state across runs; callers serialize invocations.
type Syncer struct {
	Sheet  Sheet
	Quotes Quoter
	// Today overrides the current date; the zero value means date.Today().
	Today date.Date
}

// Sync runs the full pipeline against the given budget transactions.
func (s *Syncer) Sync(txns []Transaction) (*Report, error) {
	today := s.Today
	if today.IsZero() {
		today = date.Today()
	}

	grid, err := s.Sheet.ReadRange(matrixRange)
	if err != nil {
		return nil, fmt.Errorf("cannot read price sheet: %w", err)
	}
	matrix := ParseMatrix(grid)

	holdings := Extract(txns)
	if len(holdings) == 0 {
		log.Println("no tickers to process")
		return &Report{Outcome: Skipped}, nil
	}

	plan := BuildPlan(holdings, matrix, today)
	if !plan.Stale(today) {
		log.Println("all tickers are up to date, nothing to fetch")
		return &Report{Outcome: Skipped}, nil
	}

	prices, err := FetchPrices(s.Quotes, plan, today)
	if err != nil {
		return nil, fmt.Errorf("price fetch failed: %w", err)
	}
	if len(prices) == 0 {
		log.Println("provider returned no new data")
		return &Report{Outcome: Skipped}, nil
	}

	axis := Reconcile(matrix, prices)
	patch := BuildPatch(plan, prices, matrix, axis)
	if patch.Empty() {
		log.Println("nothing to write")
		return &Report{Outcome: Skipped}, nil
	}

	// Capacity first: no write may reference a row or column outside the
	// physical grid.
	if patch.RequiredRows > 0 {
		if err := s.Sheet.EnsureRows(patch.RequiredRows); err != nil {
			return nil, fmt.Errorf("cannot grow sheet rows: %w", err)
		}
	}
	if patch.RequiredCols > 0 {
		if err := s.Sheet.EnsureCols(patch.RequiredCols); err != nil {
			return nil, fmt.Errorf("cannot grow sheet columns: %w", err)
		}
	}
	// Structural provisioning before any price lands in a new column.
	for _, cp := range patch.Copies {
		if err := s.Sheet.CopyRange(cp.Src, cp.Dst); err != nil {
			return nil, fmt.Errorf("cannot provision column (%s -> %s): %w", cp.Src, cp.Dst, err)
		}
	}

	log.Printf("executing batch update with %d changes", len(patch.Writes))
	if err := s.Sheet.BatchUpdate(patch.Writes); err != nil {
		return nil, fmt.Errorf("batch update failed: %w", err)
	}

	return &Report{
		Outcome:    Applied,
		NewTickers: plan.New,
		NewDates:   axis.NewDates,
		Writes:     len(patch.Writes),
	}, nil
}
