package finsheet

import (
	"regexp"
	"sort"
	"strconv"
)

// Holdings maps a ticker to its net share count. Quantities are signed;
// zero and short positions are kept, the sheet tracks them all the same.
type Holdings map[string]int64

// tradePattern is the strict two-token trade annotation: a signed integer,
// one space, and an uppercase ticker that may be exchange-qualified with
// interior dots ("10 AAPL.US", "-3 MSFT.US").
var tradePattern = regexp.MustCompile(`^([+-]?\d+) ([A-Z]+(?:\.[A-Z]+)*)$`)

// Extract aggregates the trade annotations of a transaction sequence into
// net holdings. Records without a matching check number are ignored; the
// result is independent of input order.
func Extract(txns []Transaction) Holdings {
	holdings := make(Holdings)
	for _, txn := range txns {
		m := tradePattern.FindStringSubmatch(txn.CheckNumber)
		if m == nil {
			continue
		}
		qty, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			// out-of-range digits; skip the record, never abort
			continue
		}
		holdings[m[2]] += qty
	}
	return holdings
}

// Tickers returns the tickers in deterministic (sorted) order.
func (h Holdings) Tickers() []string {
	tickers := make([]string, 0, len(h))
	for t := range h {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
