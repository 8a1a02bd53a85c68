package align

type cellKind int

const (
	cellEmpty cellKind = iota
	cellSingle
	cellMany
)

// Cell is the value of one (step, metric) slot in an aligned table. A slot
// holds no sample, exactly one sample, or the ordered list of samples that
// collided on the same logical step. A length-1 list is always represented
// as a single value, never as a list.
type Cell struct {
	kind   cellKind
	values []interface{}
}

func EmptyCell() Cell {
	return Cell{}
}

func SingleCell(value interface{}) Cell {
	return Cell{kind: cellSingle, values: []interface{}{value}}
}

// NewCell normalizes a list of non-null sample values into a Cell.
func NewCell(values []interface{}) Cell {
	switch len(values) {
	case 0:
		return Cell{}
	case 1:
		return Cell{kind: cellSingle, values: values}
	default:
		return Cell{kind: cellMany, values: values}
	}
}

func (c Cell) IsEmpty() bool {
	return c.kind == cellEmpty
}

func (c Cell) IsSingle() bool {
	return c.kind == cellSingle
}

func (c Cell) IsMany() bool {
	return c.kind == cellMany
}

// Value returns the scalar held by a single-valued cell.
func (c Cell) Value() (interface{}, bool) {
	if c.kind != cellSingle {
		return nil, false
	}
	return c.values[0], true
}

// Values returns all held values in original row order.
func (c Cell) Values() []interface{} {
	if c.kind == cellEmpty {
		return nil
	}
	return c.values
}

func (c Cell) Len() int {
	return len(c.values)
}
