package finsheet

import (
	"log"

	"github.com/hgabor/finsheet/date"
	"github.com/shopspring/decimal"
)

// PriceSet maps ticker -> date -> close price. Dates with no usable close
// are simply absent; a missing price is never represented as zero.
type PriceSet map[string]map[date.Date]decimal.Decimal

// Dates returns the sorted union of all dates present in the set.
func (ps PriceSet) Dates() []date.Date {
	var all []date.Date
	for _, series := range ps {
		for d := range series {
			all = append(all, d)
		}
	}
	return date.Sort(all)
}

// Quoter is the market-data provider contract: one batched range fetch for
// a ticker set, and a single latest-trading-day quote used to recover
// tickers whose batched series came back empty.
type Quoter interface {
	Fetch(tickers []string, r date.Range) (PriceSet, error)
	Latest(ticker string) (date.Date, decimal.Decimal, error)
}

// FetchPrices issues the one batched provider call for the plan's ticker
// union, starting at the minimum required date, then filters each series
// against its own start date. Tickers whose batch series is entirely empty
// get one latest-day retry; a retry failure drops the ticker for this run
// with a warning, it never fails the sync. A whole-batch failure does.
func FetchPrices(q Quoter, p *Plan, today date.Date) (PriceSet, error) {
	from, ok := p.Earliest()
	if !ok || from.After(today) {
		return PriceSet{}, nil
	}

	tickers := p.Tickers()
	log.Printf("fetching %d tickers from %s", len(tickers), from)
	fetched, err := q.Fetch(tickers, date.NewRange(from, today))
	if err != nil {
		return nil, err
	}

	ps := make(PriceSet, len(tickers))
	for _, ticker := range tickers {
		raw := fetched[ticker]
		if len(raw) == 0 {
			// NaN ticker: the batch had no usable close at all. One retry
			// with a latest-day quote, best effort.
			d, price, err := q.Latest(ticker)
			if err != nil {
				log.Printf("warning: dropping ticker %s: latest-day retry failed: %v", ticker, err)
				continue
			}
			log.Printf("recovered %s with latest-day quote %s@%s", ticker, price, d)
			ps[ticker] = map[date.Date]decimal.Decimal{d: price}
			continue
		}
		// Records before this ticker's own start are already on the sheet;
		// they were only fetched because the batch starts at the common
		// minimum. Drop them here so the patch stays minimal.
		series := make(map[date.Date]decimal.Decimal, len(raw))
		for d, price := range raw {
			if !d.Before(p.Start[ticker]) {
				series[d] = price
			}
		}
		if len(series) == 0 {
			// up to date, nothing new for this ticker
			continue
		}
		ps[ticker] = series
	}
	return ps, nil
}
