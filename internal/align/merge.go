package align

// Merge outer-joins the densified group tables onto one global step axis.
//
// The first declared group with a non-empty table anchors the join; every
// remaining non-empty group is full-outer-joined on step in declared order.
// An incoming column whose name is already taken is suffixed with the
// incoming group's name; a column that is still a duplicate after suffixing
// is dropped, keeping the first occurrence. Rows present in only one group
// keep empty cells for the other groups' columns — no row is ever dropped.
func Merge(groups []Group, tables map[string]*Table) *Table {
	ordered := make([]Group, 0, len(groups))
	for _, group := range groups {
		if table, ok := tables[group.Name]; ok && !table.IsEmpty() {
			ordered = append(ordered, group)
		}
	}
	if len(ordered) == 0 {
		return NewTable()
	}

	merged := tables[ordered[0].Name].Clone()

	for _, group := range ordered[1:] {
		table := tables[group.Name]

		// union of step axes, even for steps whose cells are all empty
		for _, step := range table.Steps() {
			merged.ensureStep(step)
		}

		for _, column := range table.Columns() {
			name := column
			if merged.HasColumn(name) {
				name = column + "_" + group.Name
			}
			if merged.HasColumn(name) {
				continue
			}
			merged.AddColumn(name)
			for _, step := range table.Steps() {
				if cell := table.Cell(step, column); !cell.IsEmpty() {
					merged.Set(step, name, cell)
				}
			}
		}
	}

	return merged
}
