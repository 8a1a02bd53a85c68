package cache

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/atlasml/alignsync/internal/align"
)

func TestLookupMissesWhenFileAbsent(t *testing.T) {
	store := NewCSVStore(afero.NewMemMapFs())

	table, hit, err := store.Lookup(Key{Source: "run-a", Path: "out/run-a.csv"})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, table)
}

func TestStoreThenLookupRoundTrip(t *testing.T) {
	store := NewCSVStore(afero.NewMemMapFs())
	key := Key{Source: "run-a", Path: "out/nested/run-a.csv"}

	table := align.NewTable()
	table.Set(0, "train/loss", align.SingleCell(0.5))
	table.Set(1, "train/loss", align.SingleCell(0.25))
	table.Set(1, "train/acc", align.SingleCell(0.9))

	assert.NoError(t, store.Store(key, table))

	cached, hit, err := store.Lookup(key)
	assert.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []int64{0, 1}, cached.Steps())
	assert.Equal(t, []string{"train/loss", "train/acc"}, cached.Columns())

	value, ok := cached.Cell(1, "train/loss").Value()
	assert.True(t, ok)
	assert.Equal(t, 0.25, value)

	assert.True(t, cached.Cell(0, "train/acc").IsEmpty())
}

func TestManyCellsSurviveRoundTrip(t *testing.T) {
	store := NewCSVStore(afero.NewMemMapFs())
	key := Key{Source: "run-b", Path: "run-b.csv"}

	table := align.NewTable()
	table.Set(3, "eval/score", align.NewCell([]interface{}{0.1, 0.2}))

	assert.NoError(t, store.Store(key, table))

	cached, hit, err := store.Lookup(key)
	assert.NoError(t, err)
	assert.True(t, hit)

	cell := cached.Cell(3, "eval/score")
	assert.True(t, cell.IsMany())
	assert.Equal(t, []interface{}{0.1, 0.2}, cell.Values())
}

func TestStringCellsStayStrings(t *testing.T) {
	store := NewCSVStore(afero.NewMemMapFs())
	key := Key{Source: "run-c", Path: "run-c.csv"}

	table := align.NewTable()
	table.Set(0, "train/phase", align.SingleCell("warmup"))

	assert.NoError(t, store.Store(key, table))

	cached, _, err := store.Lookup(key)
	assert.NoError(t, err)

	value, ok := cached.Cell(0, "train/phase").Value()
	assert.True(t, ok)
	assert.Equal(t, "warmup", value)
}

func TestLookupSkipsCorruptedSteps(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "step,train/loss\n0,0.5\nnot-a-step,0.4\n2,0.3\n"
	assert.NoError(t, afero.WriteFile(fs, "run-d.csv", []byte(content), 0644))

	store := NewCSVStore(fs)
	cached, hit, err := store.Lookup(Key{Source: "run-d", Path: "run-d.csv"})
	assert.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []int64{0, 2}, cached.Steps())
}
