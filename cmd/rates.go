package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/google/subcommands"
	"github.com/hgabor/finsheet"
	"github.com/hgabor/finsheet/date"
	"github.com/hgabor/finsheet/mnb"
)

type ratesCmd struct {
	sheet      string
	currencies string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "append missing currency fixings to the rates sheet" }
func (*ratesCmd) Usage() string {
	return `fsh rates [-sheet <sheet>] [-currencies <codes>]

  Appends the daily fixings published by the central bank since the last
  recorded one, for each listed currency. Fixings are written exactly as
  published.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sheet, "sheet", "Rates", "Name of the rates sheet.")
	f.StringVar(&c.currencies, "currencies", "EUR,USD", "Comma-separated currency codes to update.")
}

func (c *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := LoadConfig()
	wb, err := openWorkbook(cfg)
	if err != nil {
		return fail(err)
	}
	ws, err := wb.Worksheet(c.sheet)
	if err != nil {
		return fail(err)
	}

	today := date.Today()
	for _, cur := range strings.Split(c.currencies, ",") {
		cur = strings.TrimSpace(cur)
		if cur == "" {
			continue
		}
		if err := finsheet.UpdateRates(ws, cur, today, mnb.Fetch); err != nil {
			return fail(err)
		}
	}
	return subcommands.ExitSuccess
}
