package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/hgabor/finsheet"
	"github.com/hgabor/finsheet/ksh"
)

type inflationCmd struct {
	sheet string
}

func (*inflationCmd) Name() string     { return "inflation" }
func (*inflationCmd) Synopsis() string { return "refresh the yearly inflation sheet" }
func (*inflationCmd) Usage() string {
	return `fsh inflation [-sheet <sheet>]

  Reconciles the inflation sheet with the published yearly consumer price
  index series. The running year carries an estimate averaged from the
  monthly indices, so its cell moves until the year is published.
`
}

func (c *inflationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sheet, "sheet", "Inflation", "Name of the inflation sheet.")
}

func (c *inflationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := LoadConfig()
	wb, err := openWorkbook(cfg)
	if err != nil {
		return fail(err)
	}
	ws, err := wb.Worksheet(c.sheet)
	if err != nil {
		return fail(err)
	}

	values, err := ksh.Fetch()
	if err != nil {
		return fail(err)
	}
	if err := finsheet.UpdateInflation(ws, values); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
