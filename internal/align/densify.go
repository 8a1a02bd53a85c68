package align

import (
	"sort"
)

type denseColumn struct {
	present []bool
	values  []interface{}
}

// Densify turns one group's sparse per-metric series into a dense table with
// one row per logical step id.
//
// The group's own step counter (the metric key equal to the group's step
// column) is the main key. Its maximum observed native step bounds a
// reference index 0..max; every series is clipped to that range, duplicate
// native steps collapse to the last occurrence, and the main key's values
// are backward-filled over the index to form the id of each row. Rows
// sharing an id collapse into one output row; a column's non-null values
// within such a run become a single scalar, a list in row order, or stay
// empty. Backward fill means downstream metrics logged just before their
// step counter advances land on that counter's id.
//
// A group without a main key series produces an empty table, which is a
// skipped group rather than an error.
func Densify(group Group, seriesByKey map[string]Series) *Table {
	table := NewTable()

	main, ok := seriesByKey[group.StepColumn]
	if !ok || len(main) == 0 {
		return table
	}

	maxStep := int64(-1)
	for _, sample := range main {
		if sample.Step > maxStep {
			maxStep = sample.Step
		}
	}
	if maxStep < 0 {
		return table
	}
	n := maxStep + 1

	columns := make(map[string]*denseColumn, len(seriesByKey))
	for key, series := range seriesByKey {
		column := &denseColumn{
			present: make([]bool, n),
			values:  make([]interface{}, n),
		}
		for _, sample := range series {
			if sample.Step < 0 || sample.Step > maxStep {
				continue
			}
			// append-only logging: the last write for a native step wins
			column.present[sample.Step] = true
			column.values[sample.Step] = sample.Value
		}
		columns[key] = column
	}

	// Backward-fill ids from the main column. A row with no id after the
	// fill (trailing nulls, or a main value that is not a step number) has
	// no logical step and is dropped.
	ids := make([]*int64, n)
	mainColumn := columns[group.StepColumn]
	var next *int64
	for i := n - 1; i >= 0; i-- {
		if mainColumn.present[i] && mainColumn.values[i] != nil {
			if id, ok := CoerceStep(mainColumn.values[i]); ok {
				value := id
				next = &value
			} else {
				next = nil
			}
		}
		ids[i] = next
	}

	rowsByID := make(map[int64][]int64)
	for i := int64(0); i < n; i++ {
		if ids[i] == nil {
			continue
		}
		id := *ids[i]
		rowsByID[id] = append(rowsByID[id], i)
	}

	idOrder := make([]int64, 0, len(rowsByID))
	for id := range rowsByID {
		idOrder = append(idOrder, id)
	}
	sort.Slice(idOrder, func(i, j int) bool { return idOrder[i] < idOrder[j] })

	metricKeys := make([]string, 0, len(seriesByKey))
	for key := range seriesByKey {
		if key != group.StepColumn {
			metricKeys = append(metricKeys, key)
		}
	}
	sort.Strings(metricKeys)

	table.AddColumn(group.IDColumn())
	for _, key := range metricKeys {
		table.AddColumn(key)
	}

	for _, id := range idOrder {
		table.Set(id, group.IDColumn(), SingleCell(id))
		for _, key := range metricKeys {
			column := columns[key]
			var collected []interface{}
			for _, row := range rowsByID[id] {
				if column.present[row] && column.values[row] != nil {
					collected = append(collected, column.values[row])
				}
			}
			if len(collected) > 0 {
				table.Set(id, key, NewCell(collected))
			}
		}
	}

	return table
}
