package align

import (
	"sort"
)

// Table is a step-indexed metric table. Rows are kept sorted by ascending
// step; column order is the order of first registration.
type Table struct {
	columns []string
	steps   []int64
	cells   map[int64]map[string]Cell
}

func NewTable() *Table {
	return &Table{
		cells: make(map[int64]map[string]Cell),
	}
}

func (t *Table) Len() int {
	return len(t.steps)
}

func (t *Table) IsEmpty() bool {
	return len(t.steps) == 0
}

func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

func (t *Table) Steps() []int64 {
	steps := make([]int64, len(t.steps))
	copy(steps, t.steps)
	return steps
}

func (t *Table) HasColumn(name string) bool {
	for _, col := range t.columns {
		if col == name {
			return true
		}
	}
	return false
}

func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
}

func (t *Table) ensureStep(step int64) {
	if _, ok := t.cells[step]; ok {
		return
	}
	i := sort.Search(len(t.steps), func(i int) bool { return t.steps[i] >= step })
	t.steps = append(t.steps, 0)
	copy(t.steps[i+1:], t.steps[i:])
	t.steps[i] = step
	t.cells[step] = make(map[string]Cell)
}

// Set stores a cell, registering the column and step as needed. Empty cells
// are not stored; a missing slot already reads back as empty.
func (t *Table) Set(step int64, column string, cell Cell) {
	t.AddColumn(column)
	t.ensureStep(step)
	if cell.IsEmpty() {
		delete(t.cells[step], column)
		return
	}
	t.cells[step][column] = cell
}

// Cell returns the cell at (step, column), or an empty cell when no sample
// reached that slot.
func (t *Table) Cell(step int64, column string) Cell {
	if row, ok := t.cells[step]; ok {
		return row[column]
	}
	return Cell{}
}

// Row returns the non-empty cells of one step keyed by column name.
func (t *Table) Row(step int64) map[string]Cell {
	row := make(map[string]Cell)
	for column, cell := range t.cells[step] {
		row[column] = cell
	}
	return row
}

func (t *Table) Clone() *Table {
	clone := NewTable()
	clone.columns = make([]string, len(t.columns))
	copy(clone.columns, t.columns)
	clone.steps = make([]int64, len(t.steps))
	copy(clone.steps, t.steps)
	for step, row := range t.cells {
		newRow := make(map[string]Cell, len(row))
		for column, cell := range row {
			newRow[column] = cell
		}
		clone.cells[step] = newRow
	}
	return clone
}
