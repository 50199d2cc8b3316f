package finsheet

import (
	"github.com/hgabor/finsheet/date"
)

// The sheet stores dates in the Hungarian locale form "2024.06.03." (note
// the trailing dot). That form exists only at the sheet boundary; the rest
// of the engine works on date.Date keys. These two functions are the whole
// normalize/denormalize pair.

const sheetDateFormat = "2006.01.02."

// ParseSheetDate normalizes a locale-formatted sheet cell into a Date.
func ParseSheetDate(cell string) (date.Date, error) {
	return date.ParseIn(sheetDateFormat, cell)
}

// FormatSheetDate denormalizes a Date into the locale form written to the
// sheet.
func FormatSheetDate(d date.Date) string {
	return d.Format(sheetDateFormat)
}
