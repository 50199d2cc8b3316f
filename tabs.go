package finsheet

import (
	"errors"
	"fmt"
)

// Budget tab titles. Extra-currency transaction tabs are derived with
// TransactionsTabFor.
const (
	CategoriesTab   = "YNAB/Categories"
	BudgetsTab      = "YNAB/Budgets"
	TransactionsTab = "YNAB/Transactions"
)

// TransactionsTabFor returns the per-currency transactions tab title.
func TransactionsTabFor(currency string) string {
	return TransactionsTab + currency
}

// tabSpec is the initial grid size of a budget tab; the writers resize them
// to fit on every sync anyway.
type tabSpec struct {
	title string
	rows  int
	cols  int
}

// EnsureTabs creates the budget worksheets that do not exist yet.
func EnsureTabs(wb Workbook, extraCurrencies []string) error {
	specs := []tabSpec{
		{CategoriesTab, 4, 1},
		{BudgetsTab, 2, 2},
		{TransactionsTab, 1, 7},
	}
	for _, cur := range extraCurrencies {
		specs = append(specs, tabSpec{TransactionsTabFor(cur), 1, 7})
	}

	for _, spec := range specs {
		_, err := wb.Worksheet(spec.title)
		if errors.Is(err, ErrWorksheetNotFound) {
			if _, err := wb.AddWorksheet(spec.title, spec.rows, spec.cols); err != nil {
				return fmt.Errorf("cannot create tab %q: %w", spec.title, err)
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
