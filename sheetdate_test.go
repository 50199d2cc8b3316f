package finsheet

import (
	"testing"

	"github.com/hgabor/finsheet/date"
)

func TestSheetDateRoundTrip(t *testing.T) {
	d, err := ParseSheetDate("2024.06.03.")
	if err != nil {
		t.Fatalf("ParseSheetDate() failed: %v", err)
	}
	if d != date.MustParse("2024-06-03") {
		t.Errorf("parsed %s, want 2024-06-03", d)
	}
	if got := FormatSheetDate(d); got != "2024.06.03." {
		t.Errorf("FormatSheetDate() = %q, want 2024.06.03.", got)
	}
}

func TestParseSheetDateRejectsOtherForms(t *testing.T) {
	for _, cell := range []string{"2024-06-03", "2024.06.03", "06/03/2024", "", "total"} {
		if _, err := ParseSheetDate(cell); err == nil {
			t.Errorf("ParseSheetDate(%q): want error", cell)
		}
	}
}
