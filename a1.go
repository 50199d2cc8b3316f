package finsheet

import (
	"fmt"
	"strings"
)

// A1 returns the A1 notation for a 1-based (row, col) cell, e.g. A1(4, 2)
// is "B4".
func A1(row, col int) string {
	return ColName(col) + fmt.Sprint(row)
}

// ColName returns the spreadsheet column letters for a 1-based column
// index: 1 is "A", 26 is "Z", 27 is "AA".
func ColName(col int) string {
	var b strings.Builder
	for col > 0 {
		col--
		b.WriteByte(byte('A' + col%26))
		col /= 26
	}
	// the loop emits letters least significant first
	s := []byte(b.String())
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return string(s)
}
