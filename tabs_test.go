package finsheet

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hgabor/finsheet/date"
	"github.com/hgabor/finsheet/ksh"
	"github.com/hgabor/finsheet/mnb"
)

// fakeGrid extends fakeSheet with the structural operations of GridSheet.
type fakeGrid struct {
	fakeSheet
	cleared  int
	merges   []string
	unmerges []string
	hidden   [][2]int
	size     [2]int
}

func (f *fakeGrid) Clear() error { f.cleared++; return nil }

func (f *fakeGrid) Resize(rows, cols int) error {
	f.size = [2]int{rows, cols}
	return nil
}

func (f *fakeGrid) Merge(a1 string) error {
	f.merges = append(f.merges, a1)
	return nil
}

func (f *fakeGrid) UnmergeRows(rowRange string) error {
	f.unmerges = append(f.unmerges, rowRange)
	return nil
}

func (f *fakeGrid) HideRows(start, end int) error {
	f.hidden = append(f.hidden, [2]int{start, end})
	return nil
}

// fakeWorkbook hands out one fakeGrid per known title.
type fakeWorkbook struct {
	sheets map[string]*fakeGrid
	added  []string
}

func (f *fakeWorkbook) Worksheet(title string) (GridSheet, error) {
	if ws, ok := f.sheets[title]; ok {
		return ws, nil
	}
	return nil, ErrWorksheetNotFound
}

func (f *fakeWorkbook) AddWorksheet(title string, rows, cols int) (GridSheet, error) {
	ws := &fakeGrid{}
	f.sheets[title] = ws
	f.added = append(f.added, title)
	return ws, nil
}

func TestEnsureTabs(t *testing.T) {
	wb := &fakeWorkbook{sheets: map[string]*fakeGrid{TransactionsTab: {}}}

	if err := EnsureTabs(wb, []string{"EUR"}); err != nil {
		t.Fatalf("EnsureTabs() failed: %v", err)
	}
	want := []string{CategoriesTab, BudgetsTab, "YNAB/TransactionsEUR"}
	if !reflect.DeepEqual(wb.added, want) {
		t.Errorf("added tabs %v, want %v", wb.added, want)
	}
}

func testBudget() *Budget {
	return &Budget{
		MasterCategories: []MasterCategory{
			{EntityID: "mc1", Name: "Everyday", SubCategories: []SubCategory{
				{EntityID: "sc1", Name: "Groceries"},
				{EntityID: "sc2", Name: "Fuel"},
				{EntityID: "sc3", Name: "Old", IsTombstone: true},
			}},
			{EntityID: "mc2", Name: "Savings", SubCategories: []SubCategory{
				{EntityID: "sc4", Name: "Emergency"},
			}},
			{EntityID: "mc3", Name: "Dead", IsTombstone: true, SubCategories: []SubCategory{
				{EntityID: "sc5", Name: "Gone"},
			}},
		},
		Accounts: []Account{{EntityID: "a1", AccountName: "Checking"}},
		Payees:   []Payee{{EntityID: "p1", Name: "Grocer"}},
		Transactions: []Transaction{
			{EntityID: "t2", Date: date.MustParse("2024-06-04"), Amount: 120,
				AccountID: "a1", PayeeID: "p1", CategoryID: "sc1", Memo: "refund"},
			{EntityID: "t1", Date: date.MustParse("2024-06-03"), Amount: -35.5,
				AccountID: "a1", PayeeID: "p1", CategoryID: "sc1"},
			{EntityID: "t3", Date: date.MustParse("2024-06-05"), Amount: -1,
				AccountID: "a1", IsTombstone: true},
		},
	}
}

func TestStoreCategories(t *testing.T) {
	ws := &fakeGrid{}
	if err := StoreCategories(testBudget(), ws); err != nil {
		t.Fatalf("StoreCategories() failed: %v", err)
	}

	if ws.cleared != 1 || !reflect.DeepEqual(ws.unmerges, []string{"2:2"}) {
		t.Errorf("cleared=%d unmerges=%v, want 1 and [2:2]", ws.cleared, ws.unmerges)
	}
	// Three live subcategories over two masters.
	if ws.size != [2]int{4, 3} {
		t.Errorf("resized to %v, want [4 3]", ws.size)
	}

	if len(ws.writes) != 1 {
		t.Fatalf("got %d writes, want one block write", len(ws.writes))
	}
	block := ws.writes[0].Value.([][]any)
	wantNames := []any{"Everyday", "Everyday", "Savings"}
	if !reflect.DeepEqual(block[1], wantNames) {
		t.Errorf("name row = %v, want %v", block[1], wantNames)
	}
	wantSubs := []any{"Groceries", "Fuel", "Emergency"}
	if !reflect.DeepEqual(block[3], wantSubs) {
		t.Errorf("subcategory row = %v, want %v", block[3], wantSubs)
	}

	// Only the two-column master merges its name span; id rows end up hidden.
	if want := []string{"A2:B2"}; !reflect.DeepEqual(ws.merges, want) {
		t.Errorf("merges = %v, want %v", ws.merges, want)
	}
	if want := [][2]int{{0, 1}, {2, 3}}; !reflect.DeepEqual(ws.hidden, want) {
		t.Errorf("hidden rows = %v, want %v", ws.hidden, want)
	}
}

func TestStoreTransactions(t *testing.T) {
	ws := &fakeGrid{}
	if err := StoreTransactions(testBudget(), ws, "USD", nil); err != nil {
		t.Fatalf("StoreTransactions() failed: %v", err)
	}

	if len(ws.writes) != 1 {
		t.Fatalf("got %d writes, want one block write", len(ws.writes))
	}
	rows := ws.writes[0].Value.([][]any)
	// Header plus the two live transactions, tombstone dropped.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !reflect.DeepEqual(rows[0], transactionHeader) {
		t.Errorf("header = %v", rows[0])
	}
	// Date order, ids resolved, outflow/inflow split and formatted.
	want := []any{"Checking", "2024.06.03.", "Grocer", "Everyday: Groceries", "", "$35.50", ""}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("first row = %v, want %v", rows[1], want)
	}
	if rows[2][6] != "$120.00" || rows[2][5] != "" {
		t.Errorf("inflow row = %v", rows[2])
	}
}

func TestStoreTransactionsAccountFilter(t *testing.T) {
	ws := &fakeGrid{}
	err := StoreTransactions(testBudget(), ws, "USD", map[string]bool{"other": true})
	if err != nil {
		t.Fatalf("StoreTransactions() failed: %v", err)
	}
	rows := ws.writes[0].Value.([][]any)
	if len(rows) != 1 {
		t.Errorf("got %d rows, want header only", len(rows))
	}
}

func TestUpdateRates(t *testing.T) {
	ws := &fakeGrid{fakeSheet: fakeSheet{
		reads: map[string][][]string{
			"1:1": {{"", "EUR", "USD"}},
			"A4":  {{"2024.06.03."}},
		},
		lastRows: map[int]int{3: 4},
		rows:     4,
	}}
	var gotRange date.Range
	fetch := func(currency string, r date.Range) ([]mnb.Rate, error) {
		if currency != "USD" {
			t.Errorf("fetched currency %q, want USD", currency)
		}
		gotRange = r
		return []mnb.Rate{
			{Date: "2024.06.04.", Value: "359,41"},
			{Date: "2024.06.05.", Value: "358,91"},
		}, nil
	}

	err := UpdateRates(ws, "USD", date.MustParse("2024-06-05"), fetch)
	if err != nil {
		t.Fatalf("UpdateRates() failed: %v", err)
	}
	if gotRange.From != date.MustParse("2024-06-04") {
		t.Errorf("fetch starts at %s, want the day after the anchor", gotRange.From)
	}
	if ws.rows != 6 {
		t.Errorf("sheet grown to %d rows, want 6", ws.rows)
	}
	want := []CellWrite{
		{Range: "A5", Value: "2024.06.04."},
		{Range: "C5", Value: "359,41"},
		{Range: "A6", Value: "2024.06.05."},
		{Range: "C6", Value: "358,91"},
	}
	if !reflect.DeepEqual(ws.writes, want) {
		t.Errorf("writes = %v, want %v", ws.writes, want)
	}
}

func TestUpdateRatesUpToDate(t *testing.T) {
	ws := &fakeGrid{fakeSheet: fakeSheet{
		reads: map[string][][]string{
			"1:1": {{"", "EUR"}},
			"A4":  {{"2024.06.05."}},
		},
		lastRows: map[int]int{2: 4},
	}}
	fetch := func(string, date.Range) ([]mnb.Rate, error) {
		return nil, errors.New("must not be called")
	}

	if err := UpdateRates(ws, "EUR", date.MustParse("2024-06-05"), fetch); err != nil {
		t.Fatalf("UpdateRates() failed: %v", err)
	}
	if len(ws.writes) != 0 {
		t.Errorf("writes = %v, want none", ws.writes)
	}
}

func TestUpdateRatesUnknownCurrency(t *testing.T) {
	ws := &fakeGrid{fakeSheet: fakeSheet{
		reads: map[string][][]string{"1:1": {{"", "EUR"}}},
	}}
	fetch := func(string, date.Range) ([]mnb.Rate, error) { return nil, nil }

	if err := UpdateRates(ws, "CHF", date.MustParse("2024-06-05"), fetch); err == nil {
		t.Error("want error for a currency with no column")
	}
}

func TestUpdateInflation(t *testing.T) {
	ws := &fakeGrid{fakeSheet: fakeSheet{
		reads: map[string][][]string{
			"A4:B": {{"2022", "14,5"}, {"2023", "17,6"}, {"2024", "3,5"}},
		},
		rows: 6,
	}}

	err := UpdateInflation(ws, []ksh.YearValue{
		{Year: "2022", Value: "14,5"}, // unchanged
		{Year: "2023", Value: "17,6"}, // unchanged
		{Year: "2024", Value: "3,7"},  // revised estimate
		{Year: "2025", Value: "4,1"},  // new year
	})
	if err != nil {
		t.Fatalf("UpdateInflation() failed: %v", err)
	}

	want := []CellWrite{
		{Range: "B6", Value: "3,7"},
		{Range: "A7", Value: []any{"2025", "4,1"}},
	}
	if !reflect.DeepEqual(ws.writes, want) {
		t.Errorf("writes = %v, want %v", ws.writes, want)
	}
	if ws.rows != 7 {
		t.Errorf("sheet grown to %d rows, want 7", ws.rows)
	}
}

func TestRatiosFrom(t *testing.T) {
	records := [][]string{
		{"Index", "Cap"},
		{"US", "60"},
		{"Europe", "20"},
		{"Asia", "20"},
		{"Crypto", "999"},
	}
	ratios, err := ratiosFrom(records, []string{"US", "Europe", "Asia"})
	if err != nil {
		t.Fatalf("ratiosFrom() failed: %v", err)
	}
	want := map[string]float64{"US": 0.54, "Europe": 0.18, "Asia": 0.18}
	if !reflect.DeepEqual(ratios, want) {
		t.Errorf("ratios = %v, want %v", ratios, want)
	}

	if _, err := ratiosFrom(records, []string{"Mars"}); err == nil {
		t.Error("want error when no region matches")
	}
}

func TestUpdateRatios(t *testing.T) {
	ws := &fakeGrid{fakeSheet: fakeSheet{
		reads: map[string][][]string{
			"O:O": {{"Portfolio"}, {"US"}, {"Europe"}},
		},
	}}

	err := UpdateRatios(ws, map[string]float64{"US": 0.54, "Europe": 0.18, "Asia": 0.18})
	if err != nil {
		t.Fatalf("UpdateRatios() failed: %v", err)
	}
	got := make(map[string]any)
	for _, w := range ws.writes {
		got[w.Range] = w.Value
	}
	want := map[string]any{"Q2": 0.54, "Q3": 0.18}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("writes = %v, want %v", got, want)
	}
}
