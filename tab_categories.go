package finsheet

// StoreCategories rewrites the categories tab from the budget snapshot.
//
// The tab is a four-row transposed layout read by lookup formulas elsewhere
// in the spreadsheet: row 1 master category ids, row 2 master category
// names, row 3 subcategory ids, row 4 subcategory names. One column per
// subcategory; a master's id and name repeat across its span, and the name
// cells of each span are merged so the header reads once. The id rows are
// hidden.
func StoreCategories(b *Budget, ws GridSheet) error {
	var ids, names, subIDs, subNames []any
	type span struct{ start, end int } // 1-based columns, inclusive
	var merges []span

	for _, mc := range b.MasterCategories {
		if mc.IsTombstone {
			continue
		}
		live := mc.LiveSubCategories()
		if len(live) == 0 {
			continue
		}
		start := len(ids) + 1
		for _, sc := range live {
			ids = append(ids, mc.EntityID)
			names = append(names, mc.Name)
			subIDs = append(subIDs, sc.EntityID)
			subNames = append(subNames, sc.Name)
		}
		if len(live) > 1 {
			merges = append(merges, span{start, start + len(live) - 1})
		}
	}
	if len(ids) == 0 {
		return nil
	}

	if err := ws.Clear(); err != nil {
		return err
	}
	// Stale merges from a previous snapshot would break the block write.
	if err := ws.UnmergeRows("2:2"); err != nil {
		return err
	}
	if err := ws.Resize(4, len(ids)); err != nil {
		return err
	}

	block := [][]any{ids, names, subIDs, subNames}
	if err := ws.BatchUpdate([]CellWrite{{Range: "A1", Value: block}}); err != nil {
		return err
	}

	for _, m := range merges {
		if err := ws.Merge(A1(2, m.start) + ":" + A1(2, m.end)); err != nil {
			return err
		}
	}

	// The id rows are plumbing, not for reading.
	if err := ws.HideRows(0, 1); err != nil {
		return err
	}
	return ws.HideRows(2, 3)
}
