package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/google/subcommands"
	"github.com/hgabor/finsheet"
)

type ratiosCmd struct {
	sheet   string
	regions string
}

func (*ratiosCmd) Name() string     { return "ratios" }
func (*ratiosCmd) Synopsis() string { return "update the target region weights on the portfolio sheet" }
func (*ratiosCmd) Usage() string {
	return `fsh ratios [-sheet <sheet>] [-regions <names>]

  Fetches the index market caps and writes cap-weighted target weights
  next to the region labels of the portfolio sheet.
`
}

func (c *ratiosCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sheet, "sheet", "Portfolio", "Name of the portfolio sheet.")
	f.StringVar(&c.regions, "regions", "US,Europe,Asia", "Comma-separated region labels to weight.")
}

func (c *ratiosCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := LoadConfig()
	wb, err := openWorkbook(cfg)
	if err != nil {
		return fail(err)
	}
	ws, err := wb.Worksheet(c.sheet)
	if err != nil {
		return fail(err)
	}

	var regions []string
	for _, r := range strings.Split(c.regions, ",") {
		if r = strings.TrimSpace(r); r != "" {
			regions = append(regions, r)
		}
	}
	ratios, err := finsheet.FetchRatios(regions)
	if err != nil {
		return fail(err)
	}
	if err := finsheet.UpdateRatios(ws, ratios); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
