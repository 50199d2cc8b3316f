package finsheet

import "sort"

// transactionHeader is the column layout of a transactions tab.
var transactionHeader = []any{"Account", "Date", "Payee", "Category", "Memo", "Outflow", "Inflow"}

// StoreTransactions rewrites a transactions tab from the budget snapshot.
// Entity ids are resolved to display names; amounts land in the Outflow or
// Inflow column formatted for the tab's currency. When accounts is non-nil
// only transactions of those accounts (by id) are written, which is how the
// extra-currency tabs are split off the main one.
func StoreTransactions(b *Budget, ws GridSheet, currency string, accounts map[string]bool) error {
	accountNames := make(map[string]string)
	for _, a := range b.Accounts {
		accountNames[a.EntityID] = a.AccountName
	}
	payeeNames := make(map[string]string)
	for _, p := range b.Payees {
		payeeNames[p.EntityID] = p.Name
	}
	categoryNames := make(map[string]string)
	for _, mc := range b.MasterCategories {
		for _, sc := range mc.SubCategories {
			categoryNames[sc.EntityID] = mc.Name + ": " + sc.Name
		}
	}

	var txns []Transaction
	for _, t := range b.Transactions {
		if t.IsTombstone {
			continue
		}
		if accounts != nil && !accounts[t.AccountID] {
			continue
		}
		txns = append(txns, t)
	}
	sort.SliceStable(txns, func(i, j int) bool { return txns[i].Date.Before(txns[j].Date) })

	rows := make([][]any, 0, len(txns)+1)
	rows = append(rows, transactionHeader)
	for _, t := range txns {
		outflow, inflow := "", ""
		if t.Amount < 0 {
			outflow = M(-t.Amount, currency).String()
		} else {
			inflow = M(t.Amount, currency).String()
		}
		rows = append(rows, []any{
			accountNames[t.AccountID],
			FormatSheetDate(t.Date),
			payeeNames[t.PayeeID],
			categoryNames[t.CategoryID],
			t.Memo,
			outflow,
			inflow,
		})
	}

	if err := ws.Clear(); err != nil {
		return err
	}
	if err := ws.Resize(len(rows), len(transactionHeader)); err != nil {
		return err
	}
	return ws.BatchUpdate([]CellWrite{{Range: "A1", Value: rows}})
}
