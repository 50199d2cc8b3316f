package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hgabor/finsheet"
)

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails (dumb terminals, pipes).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// reportMarkdown summarizes a price sync run.
func reportMarkdown(r *finsheet.Report) string {
	if r.Outcome == finsheet.Skipped {
		return "Prices are already up to date, nothing written.\n"
	}
	var b strings.Builder
	b.WriteString("# Price sync\n\n")
	fmt.Fprintf(&b, "- cells written: %d\n", r.Writes)
	if len(r.NewTickers) > 0 {
		fmt.Fprintf(&b, "- new tickers: %s\n", strings.Join(r.NewTickers, ", "))
	}
	if len(r.NewDates) > 0 {
		fmt.Fprintf(&b, "- new dates: %d (latest %s)\n", len(r.NewDates), r.NewDates[len(r.NewDates)-1])
	}
	return b.String()
}
