package finsheet

import (
	"reflect"
	"testing"
)

func txn(check string) Transaction { return Transaction{CheckNumber: check} }

func TestExtract(t *testing.T) {
	txns := []Transaction{
		txn("10 AAPL.US"),
		txn("groceries"),
		txn("-3 AAPL.US"),
		txn("+2 MSFT.US"),
		txn("5 BRK.B.US"),
		txn(""),
		txn("10AAPL.US"),  // missing separator
		txn("10 aapl.us"), // lowercase is not a ticker
		txn("10 AAPL.US extra"),
	}

	got := Extract(txns)
	want := Holdings{"AAPL.US": 7, "MSFT.US": 2, "BRK.B.US": 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractOrderIndependent(t *testing.T) {
	forward := []Transaction{txn("10 AAPL.US"), txn("-4 AAPL.US"), txn("1 MSFT.US")}
	backward := []Transaction{txn("1 MSFT.US"), txn("-4 AAPL.US"), txn("10 AAPL.US")}

	if got, want := Extract(forward), Extract(backward); !reflect.DeepEqual(got, want) {
		t.Errorf("Extract depends on input order: %v vs %v", got, want)
	}
}

func TestExtractKeepsZeroAndShort(t *testing.T) {
	got := Extract([]Transaction{txn("10 AAPL.US"), txn("-10 AAPL.US"), txn("-2 MSFT.US")})
	if got["AAPL.US"] != 0 {
		t.Errorf("closed position = %d, want 0", got["AAPL.US"])
	}
	if _, ok := got["AAPL.US"]; !ok {
		t.Error("closed position dropped from holdings")
	}
	if got["MSFT.US"] != -2 {
		t.Errorf("short position = %d, want -2", got["MSFT.US"])
	}
}

func TestTickersSorted(t *testing.T) {
	h := Holdings{"MSFT.US": 1, "AAPL.US": 2, "GOOG.US": 3}
	want := []string{"AAPL.US", "GOOG.US", "MSFT.US"}
	if got := h.Tickers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Tickers() = %v, want %v", got, want)
	}
}
