// Package mnb fetches daily currency exchange rates from the Hungarian
// National Bank's published rate table.
package mnb

import (
	"fmt"
	"io"
	"iter"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/hgabor/finsheet/date"
	"golang.org/x/net/html"
)

const ratesURL = "https://www.mnb.hu/arfolyam-tablazat"

// queryDateFormat is what the rate-table endpoint expects in its date
// parameters.
const queryDateFormat = "2006.01.02."

// Rate is one published fixing: the date and the rate exactly as the bank
// renders them. Both stay textual, the sheet consumes them verbatim.
type Rate struct {
	Date  string
	Value string
}

// Fetch returns the fixings of one currency over the given range, oldest
// first.
func Fetch(currency string, r date.Range) ([]Rate, error) {
	params := url.Values{}
	params.Set("deviza", "rbCustom")
	params.Set("datefrom", r.From.Format(queryDateFormat))
	params.Set("datetill", r.To.Format(queryDateFormat))
	params.Set("order", "1")
	params.Set("customdeviza[]", currency)

	addr := ratesURL + "?" + params.Encode()
	log.Printf("fetching mnb rates for %s, from %s until %s", currency, r.From, r.To)

	resp, err := http.Get(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mnb rates for %s: %w", currency, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch mnb rates for %s: received status %s", currency, resp.Status)
	}
	return parseRates(resp.Body)
}

// parseRates extracts (date, rate) pairs from the first table of the rate
// page: one row per fixing, date in the first cell, rate in the second.
func parseRates(r io.Reader) ([]Rate, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mnb rate table: %w", err)
	}

	table := findFirst(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("no rate table in mnb response")
	}

	var rates []Rate
	for row := range descendants(table, "tr") {
		var cells []string
		for cell := range descendants(row, "td") {
			cells = append(cells, strings.TrimSpace(text(cell)))
		}
		if len(cells) < 2 || cells[0] == "" {
			continue
		}
		rates = append(rates, Rate{Date: cells[0], Value: cells[1]})
	}
	return rates, nil
}

// findFirst returns the first element with the given tag, depth first.
func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// descendants yields every element with the given tag below n.
func descendants(n *html.Node, tag string) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var walk func(*html.Node) bool
		walk = func(n *html.Node) bool {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == tag {
					if !yield(c) {
						return false
					}
					continue
				}
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(n)
	}
}

// text concatenates all text content below n.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
