package finsheet

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
)

// indicesURL serves a csv of index names and their total market caps.
const indicesURL = "https://marketcaps.site/indices.csv"

// ratioOverhead is the share of the portfolio kept out of the cap-weighted
// allocation, as a buffer.
const ratioOverhead = 0.1

// ratios tab geometry: region labels in column O, target weights in Q.
const (
	regionLabelCol = 15
	ratioCol       = 17
)

// FetchRatios downloads the index market caps and turns the selected
// regions into target portfolio weights: cap-weighted, scaled down by the
// overhead share, rounded to four decimals.
func FetchRatios(regions []string) (map[string]float64, error) {
	log.Println("fetching index market caps from", indicesURL)
	resp, err := http.Get(indicesURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index caps: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch index caps: received status %s", resp.Status)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read index caps csv: %w", err)
	}
	return ratiosFrom(records, regions)
}

// ratiosFrom computes the cap-weighted region weights from the raw csv
// records. Each region row carries its market cap in the last field.
func ratiosFrom(records [][]string, regions []string) (map[string]float64, error) {
	wanted := make(map[string]bool, len(regions))
	for _, r := range regions {
		wanted[r] = true
	}
	caps := make(map[string]float64)
	var total float64
	for _, row := range records {
		if len(row) < 2 || !wanted[row[0]] {
			continue
		}
		cap, err := strconv.ParseFloat(row[len(row)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad market cap for %q: %w", row[0], err)
		}
		caps[row[0]] = cap
		total += cap
	}
	if total == 0 {
		return nil, fmt.Errorf("no market caps found for regions %v", regions)
	}

	ratios := make(map[string]float64, len(caps))
	for region, cap := range caps {
		ratios[region] = math.Round(cap/total*(1-ratioOverhead)*10000) / 10000
	}
	return ratios, nil
}

// UpdateRatios writes the target weights next to their region labels on the
// portfolio tab. Regions without a label row are reported and skipped.
func UpdateRatios(ws Sheet, ratios map[string]float64) error {
	letter := ColName(regionLabelCol)
	grid, err := ws.ReadRange(letter + ":" + letter)
	if err != nil {
		return err
	}
	rowOf := make(map[string]int)
	for i, row := range grid {
		if len(row) > 0 && row[0] != "" {
			rowOf[row[0]] = i + 1
		}
	}

	var writes []CellWrite
	for region, ratio := range ratios {
		row, ok := rowOf[region]
		if !ok {
			log.Printf("warning: no %q label on the portfolio tab, skipping its ratio", region)
			continue
		}
		writes = append(writes, CellWrite{Range: A1(row, ratioCol), Value: ratio})
	}
	if len(writes) == 0 {
		return nil
	}
	return ws.BatchUpdate(writes)
}
