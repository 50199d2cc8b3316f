package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/hgabor/finsheet"
	"github.com/hgabor/finsheet/yahoo"
)

type syncCmd struct {
	stocksSheet string
	currency    string
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "sync the whole spreadsheet with the budget" }
func (*syncCmd) Usage() string {
	return `fsh sync [-stocks <sheet>] [-currency <code>]

  Downloads the freshest budget snapshot from Dropbox and brings the
  spreadsheet up to date: the category and transaction tabs are rewritten,
  and the security price sheet is extended with the prices missing since
  the last run. Missing tabs are created.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.stocksSheet, "stocks", "Stocks", "Name of the security price sheet.")
	f.StringVar(&c.currency, "currency", "HUF", "Currency of the main transactions tab.")
}

func (c *syncCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := LoadConfig()

	budget, err := fetchBudget(cfg)
	if err != nil {
		return fail(err)
	}
	wb, err := openWorkbook(cfg)
	if err != nil {
		return fail(err)
	}
	if err := finsheet.EnsureTabs(wb, cfg.ExtraCurrencies()); err != nil {
		return fail(err)
	}

	if err := syncBudgetTabs(cfg, wb, budget, c.currency); err != nil {
		return fail(err)
	}

	report, err := syncPrices(wb, budget, c.stocksSheet)
	if err != nil {
		return fail(err)
	}
	printMarkdown(reportMarkdown(report))
	return subcommands.ExitSuccess
}

// syncBudgetTabs rewrites the category tab and the transaction tabs. The
// main tab carries every account not claimed by an extra-currency tab.
func syncBudgetTabs(cfg *Config, wb finsheet.Workbook, budget *finsheet.Budget, currency string) error {
	categories, err := wb.Worksheet(finsheet.CategoriesTab)
	if err != nil {
		return err
	}
	if err := finsheet.StoreCategories(budget, categories); err != nil {
		return err
	}

	extra := make(map[string]bool)
	for _, ids := range cfg.ExtraAccounts {
		for _, id := range ids {
			extra[id] = true
		}
	}
	main := make(map[string]bool)
	for _, a := range budget.Accounts {
		if !a.IsTombstone && !extra[a.EntityID] {
			main[a.EntityID] = true
		}
	}

	txns, err := wb.Worksheet(finsheet.TransactionsTab)
	if err != nil {
		return err
	}
	if err := finsheet.StoreTransactions(budget, txns, currency, main); err != nil {
		return err
	}

	for _, cur := range cfg.ExtraCurrencies() {
		ws, err := wb.Worksheet(finsheet.TransactionsTabFor(cur))
		if err != nil {
			return err
		}
		accounts := make(map[string]bool)
		for _, id := range cfg.ExtraAccounts[cur] {
			accounts[id] = true
		}
		if err := finsheet.StoreTransactions(budget, ws, cur, accounts); err != nil {
			return err
		}
	}
	return nil
}

// syncPrices runs the price pipeline against the stocks sheet.
func syncPrices(wb finsheet.Workbook, budget *finsheet.Budget, sheet string) (*finsheet.Report, error) {
	stocks, err := wb.Worksheet(sheet)
	if err != nil {
		return nil, err
	}
	syncer := &finsheet.Syncer{Sheet: stocks, Quotes: yahoo.NewClient()}
	return syncer.Sync(budget.Transactions)
}
