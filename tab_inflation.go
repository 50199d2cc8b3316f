package finsheet

import (
	"fmt"
	"log"

	"github.com/hgabor/finsheet/ksh"
)

// inflationFirstRow is where the yearly series starts on the inflation tab;
// the rows above hold titles and formulas.
const inflationFirstRow = 4

// UpdateInflation reconciles the inflation tab with the published series:
// new years are appended, and years whose published value changed (the
// running-year estimate does, monthly) are rewritten in place.
func UpdateInflation(ws Sheet, values []ksh.YearValue) error {
	grid, err := ws.ReadRange(fmt.Sprintf("A%d:B", inflationFirstRow))
	if err != nil {
		return err
	}
	rowOf := make(map[string]int)
	valueOf := make(map[string]string)
	for i, row := range grid {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		rowOf[row[0]] = inflationFirstRow + i
		if len(row) > 1 {
			valueOf[row[0]] = row[1]
		}
	}

	next := inflationFirstRow + len(grid)
	var writes []CellWrite
	for _, v := range values {
		row, ok := rowOf[v.Year]
		if !ok {
			writes = append(writes, CellWrite{Range: A1(next, 1), Value: []any{v.Year, v.Value}})
			next++
			continue
		}
		if valueOf[v.Year] != v.Value {
			writes = append(writes, CellWrite{Range: A1(row, 2), Value: v.Value})
		}
	}
	if len(writes) == 0 {
		log.Println("inflation tab is up to date")
		return nil
	}

	if err := ws.EnsureRows(next - 1); err != nil {
		return err
	}
	log.Printf("updating %d inflation cells", len(writes))
	return ws.BatchUpdate(writes)
}
