// Package ksh fetches Hungarian inflation reference series from the KSH
// stadat CSV endpoints.
package ksh

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const (
	// yearlyURL is the yearly consumer price index table.
	yearlyURL = "https://www.ksh.hu/stadat_files/ara/hu/ara0001.csv"
	// monthlyURL is the monthly index table used to estimate the running year.
	monthlyURL = "https://www.ksh.hu/stadat_files/ara/hu/ara0039.csv"
)

// YearValue is one row of the inflation tab: a year label and the locale
// textual index value ("3,7"). Values stay textual, the sheet is the one
// consuming them.
type YearValue struct {
	Year  string
	Value string
}

// Fetch returns the yearly inflation series, extended with an estimate for
// the year following the last published one when enough monthly data
// exists.
func Fetch() ([]YearValue, error) {
	data, err := fetchCSV(yearlyURL)
	if err != nil {
		return nil, err
	}
	values := parseYearly(data)
	if len(values) == 0 {
		return nil, fmt.Errorf("ksh yearly table %s came back empty", yearlyURL)
	}

	last, err := strconv.Atoi(values[len(values)-1].Year)
	if err != nil {
		return values, nil
	}
	next := strconv.Itoa(last + 1)

	monthly, err := fetchCSV(monthlyURL)
	if err != nil {
		// the estimate is optional, the published series still syncs
		log.Printf("warning: cannot fetch ksh monthly table: %v", err)
		return values, nil
	}
	if estimate, ok := estimateYear(monthly, next); ok {
		values = append(values, YearValue{
			Year:  next,
			Value: strings.Replace(strconv.FormatFloat(estimate, 'f', 1, 64), ".", ",", 1),
		})
	}
	return values, nil
}

// fetchCSV downloads and decodes one semicolon-delimited stadat table.
func fetchCSV(url string) ([][]string, error) {
	log.Println("fetching ksh data from", url)
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ksh data from %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch ksh data from %s: received status %s", url, resp.Status)
	}
	return parseCSV(resp.Body)
}

func parseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // stadat rows vary in width
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return records, nil
}

// parseYearly reduces the yearly table to (year, value) pairs, dropping the
// two header rows.
func parseYearly(records [][]string) []YearValue {
	var values []YearValue
	for i := 2; i < len(records); i++ {
		row := records[i]
		if len(row) < 2 || row[0] == "" {
			continue
		}
		values = append(values, YearValue{Year: row[0], Value: row[1]})
	}
	return values
}

// estimateYear averages the published monthly year-over-year indices of the
// given year. The monthly table only labels the first row of each year, so
// the label carries forward; values use a decimal comma. ok is false when
// the year has no published months yet.
func estimateYear(records [][]string, year string) (float64, bool) {
	var sum float64
	var n int
	currentYear := ""
	for i := 2; i < len(records); i++ {
		row := records[i]
		if len(row) < 3 {
			continue
		}
		if row[0] != "" {
			currentYear = strings.ReplaceAll(strings.TrimSpace(row[0]), ".", "")
		}
		if currentYear != year {
			continue
		}
		v, err := strconv.ParseFloat(strings.Replace(row[2], ",", ".", 1), 64)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
