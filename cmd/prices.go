package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type pricesCmd struct {
	stocksSheet string
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "sync only the security price sheet" }
func (*pricesCmd) Usage() string {
	return `fsh prices [-stocks <sheet>]

  Extracts the holdings from the budget's trade annotations and appends
  the security prices missing since the last run. The budget tabs are
  left alone.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.stocksSheet, "stocks", "Stocks", "Name of the security price sheet.")
}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := LoadConfig()

	budget, err := fetchBudget(cfg)
	if err != nil {
		return fail(err)
	}
	wb, err := openWorkbook(cfg)
	if err != nil {
		return fail(err)
	}

	report, err := syncPrices(wb, budget, c.stocksSheet)
	if err != nil {
		return fail(err)
	}
	printMarkdown(reportMarkdown(report))
	return subcommands.ExitSuccess
}
