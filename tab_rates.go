package finsheet

import (
	"fmt"
	"log"

	"github.com/hgabor/finsheet/date"
	"github.com/hgabor/finsheet/mnb"
)

// RateSource fetches the daily fixings of one currency over a range,
// oldest first. mnb.Fetch is the production source.
type RateSource func(currency string, r date.Range) ([]mnb.Rate, error)

// UpdateRates appends the fixings missing from a rates tab.
//
// The tab has currency codes in row 1 and dates down column A; the last
// populated cell of the currency's column anchors the fetch, so only days
// after it are requested. Fixings are appended below, date and rate, in the
// bank's own rendering.
func UpdateRates(ws Sheet, currency string, today date.Date, fetch RateSource) error {
	header, err := ws.ReadRange("1:1")
	if err != nil {
		return err
	}
	col := 0
	if len(header) > 0 {
		for j, cell := range header[0] {
			if cell == currency {
				col = j + 1
				break
			}
		}
	}
	if col == 0 {
		return fmt.Errorf("no %q column on the rates tab", currency)
	}

	lastRow, err := ws.LastNonEmptyRow(col)
	if err != nil {
		return err
	}
	if lastRow < 2 {
		return fmt.Errorf("rates column %q has no seed value to append after", currency)
	}
	anchor, err := ws.ReadRange(A1(lastRow, dateCol))
	if err != nil {
		return err
	}
	if len(anchor) == 0 || len(anchor[0]) == 0 {
		return fmt.Errorf("no date next to the last %q rate in row %d", currency, lastRow)
	}
	last, err := ParseSheetDate(anchor[0][0])
	if err != nil {
		return fmt.Errorf("bad date next to the last %q rate: %w", currency, err)
	}

	from := last.Add(1)
	if today.Before(from) {
		log.Printf("%s rates are up to date", currency)
		return nil
	}
	rates, err := fetch(currency, date.NewRange(from, today))
	if err != nil {
		return err
	}
	if len(rates) == 0 {
		log.Printf("no new %s fixings published since %s", currency, last)
		return nil
	}

	if err := ws.EnsureRows(lastRow + len(rates)); err != nil {
		return err
	}
	writes := make([]CellWrite, 0, 2*len(rates))
	for i, r := range rates {
		row := lastRow + 1 + i
		writes = append(writes,
			CellWrite{Range: A1(row, dateCol), Value: r.Date},
			CellWrite{Range: A1(row, col), Value: r.Value},
		)
	}
	log.Printf("appending %d %s fixings", len(rates), currency)
	return ws.BatchUpdate(writes)
}
