package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityMapping(t *testing.T) {
	mapping := IdentityMapping([]string{"loss", "reward"})
	assert.Equal(t, Mapping{"loss": "loss", "reward": "reward"}, mapping)
}

func TestProjectSkipsEmptyAndAbsentColumns(t *testing.T) {
	row := map[string]Cell{
		"train/loss": SingleCell(0.5),
		"train/lr":   EmptyCell(),
	}
	mapping := Mapping{"train/loss": "loss", "train/lr": "lr", "train/reward": "reward"}

	projected := Project(row, mapping)

	assert.Equal(t, map[string]interface{}{"loss": 0.5}, projected)
}

func TestProjectCollidedCellsKeepAllValues(t *testing.T) {
	row := map[string]Cell{
		"rollout/reward": NewCell([]interface{}{0.1, 0.2}),
	}

	projected := Project(row, Mapping{"rollout/reward": "reward"})

	assert.Equal(t, map[string]interface{}{"reward": []interface{}{0.1, 0.2}}, projected)
}

func TestProjectLastAppliedSourceWins(t *testing.T) {
	row := map[string]Cell{
		"a/metric": SingleCell(1.0),
		"b/metric": SingleCell(2.0),
	}
	mapping := Mapping{"a/metric": "metric", "b/metric": "metric"}

	projected := Project(row, mapping)

	// sources apply in sorted key order, so the lexicographically last wins
	assert.Equal(t, map[string]interface{}{"metric": 2.0}, projected)
}

// Projecting through an identity mapping over a table's own columns must
// reproduce the original non-empty values exactly.
func TestProjectIdentityRoundTrip(t *testing.T) {
	table := NewTable()
	table.Set(0, "train/loss", SingleCell(3.0))
	table.Set(0, "rollout/reward", NewCell([]interface{}{0.5, 0.7}))
	table.Set(1, "train/loss", SingleCell(2.0))

	mapping := IdentityMapping(table.Columns())

	for _, step := range table.Steps() {
		projected := Project(table.Row(step), mapping)
		for column, value := range projected {
			cell := table.Cell(step, column)
			if single, ok := cell.Value(); ok {
				assert.Equal(t, single, value)
			} else {
				assert.Equal(t, cell.Values(), value)
			}
		}
		// every non-empty cell survives the round trip
		assert.Len(t, projected, len(table.Row(step)))
	}
}

func TestReportPresentAndMissing(t *testing.T) {
	report := Report(
		[]string{"x", "z"},
		[]string{"a", "b", "c"},
		Mapping{"x": "a", "y": "b"},
	)

	assert.Equal(t, []string{"a"}, report.Present)
	assert.Equal(t, []string{"b", "c"}, report.Missing)
}

func TestReportIdentityMapping(t *testing.T) {
	canonical := []string{"loss", "reward", "accuracy"}
	report := Report([]string{"loss", "unrelated"}, canonical, IdentityMapping(canonical))

	assert.Equal(t, []string{"loss"}, report.Present)
	assert.Equal(t, []string{"accuracy", "reward"}, report.Missing)
}
