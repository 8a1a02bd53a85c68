package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tableWith(t *testing.T, idColumn string, cells map[int64]map[string]interface{}) *Table {
	t.Helper()
	table := NewTable()
	table.AddColumn(idColumn)
	for step, row := range cells {
		table.Set(step, idColumn, SingleCell(step))
		for column, value := range row {
			table.Set(step, column, SingleCell(value))
		}
	}
	return table
}

func TestMergeOuterJoinOnStep(t *testing.T) {
	groups := DefaultGroups()
	tables := map[string]*Table{
		"train": tableWith(t, "train_id", map[int64]map[string]interface{}{
			0: {"train/loss": 3.0},
			1: {"train/loss": 2.0},
			2: {"train/loss": 1.0},
		}),
		"rollout": tableWith(t, "rollout_id", map[int64]map[string]interface{}{
			1: {"rollout/reward": 0.1},
			2: {"rollout/reward": 0.2},
			3: {"rollout/reward": 0.3},
		}),
	}

	merged := Merge(groups, tables)

	assert.Equal(t, []int64{0, 1, 2, 3}, merged.Steps())

	// step 0 exists only in the train group
	assert.True(t, merged.Cell(0, "rollout/reward").IsEmpty())
	// step 3 exists only in the rollout group
	assert.True(t, merged.Cell(3, "train/loss").IsEmpty())

	value, ok := merged.Cell(3, "rollout/reward").Value()
	assert.True(t, ok)
	assert.Equal(t, 0.3, value)
	value, ok = merged.Cell(0, "train/loss").Value()
	assert.True(t, ok)
	assert.Equal(t, 3.0, value)
}

func TestMergeSkipsEmptyGroups(t *testing.T) {
	groups := DefaultGroups()
	tables := map[string]*Table{
		"train": NewTable(),
		"eval": tableWith(t, "eval_id", map[int64]map[string]interface{}{
			10: {"eval/accuracy": 0.9},
		}),
	}

	// the first non-empty group anchors the join when the primary is empty
	merged := Merge(groups, tables)
	assert.Equal(t, []int64{10}, merged.Steps())
	assert.True(t, merged.HasColumn("eval/accuracy"))
}

func TestMergeAllGroupsEmpty(t *testing.T) {
	merged := Merge(DefaultGroups(), map[string]*Table{"train": NewTable()})
	assert.True(t, merged.IsEmpty())
}

func TestMergeSuffixesCollidingColumns(t *testing.T) {
	groups := []Group{
		{Name: "train", StepColumn: "train/step"},
		{Name: "rollout", StepColumn: "rollout/step"},
	}
	tables := map[string]*Table{
		"train": tableWith(t, "train_id", map[int64]map[string]interface{}{
			0: {"shared/metric": 1.0},
		}),
		"rollout": tableWith(t, "rollout_id", map[int64]map[string]interface{}{
			0: {"shared/metric": 2.0},
		}),
	}

	merged := Merge(groups, tables)

	value, ok := merged.Cell(0, "shared/metric").Value()
	assert.True(t, ok)
	assert.Equal(t, 1.0, value)

	value, ok = merged.Cell(0, "shared/metric_rollout").Value()
	assert.True(t, ok)
	assert.Equal(t, 2.0, value)
}

// Merging in any group order yields the same non-empty cell content; only
// collision suffixes may differ.
func TestMergeOrderIndependentContent(t *testing.T) {
	groups := DefaultGroups()
	tables := map[string]*Table{
		"train": tableWith(t, "train_id", map[int64]map[string]interface{}{
			0: {"train/loss": 3.0}, 2: {"train/loss": 1.0},
		}),
		"rollout": tableWith(t, "rollout_id", map[int64]map[string]interface{}{
			1: {"rollout/reward": 0.5},
		}),
		"eval": tableWith(t, "eval_id", map[int64]map[string]interface{}{
			2: {"eval/accuracy": 0.8},
		}),
	}

	reversed := []Group{groups[2], groups[1], groups[0]}

	forward := Merge(groups, tables)
	backward := Merge(reversed, tables)

	assert.Equal(t, forward.Steps(), backward.Steps())
	for _, column := range []string{"train/loss", "rollout/reward", "eval/accuracy"} {
		for _, step := range forward.Steps() {
			assert.Equal(t, forward.Cell(step, column), backward.Cell(step, column), column)
		}
	}
}
