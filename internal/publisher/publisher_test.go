package publisher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atlasml/alignsync/internal/align"
	"github.com/atlasml/alignsync/internal/datasource"
)

func TestPublisherRequiresTracker(t *testing.T) {
	_, err := NewPublisher(nil)
	assert.ErrorIs(t, err, ErrNoTracker)
}

func TestPublishUploadsMappedRows(t *testing.T) {
	tracker := &datasource.TrackerStoreMock{}
	publisher, err := NewPublisher(tracker)
	assert.NoError(t, err)

	table := align.NewTable()
	table.Set(0, "train/loss", align.SingleCell(0.5))
	table.Set(1, "train/loss", align.SingleCell(0.25))
	table.Set(1, "train/acc", align.SingleCell(0.9))

	mapping := align.Mapping{"train/loss": "loss", "train/acc": "accuracy"}
	stats, err := publisher.Publish(context.Background(), "proj", "exp", table, mapping, []string{"loss", "accuracy"})
	assert.NoError(t, err)
	assert.Equal(t, UploadStats{Rows: 2, Uploaded: 2, Present: 2}, stats)

	assert.Len(t, tracker.Records, 2)
	assert.Equal(t, map[string]float64{"loss": 0.5}, tracker.Records[0].Metrics)
	assert.Equal(t, map[string]float64{"loss": 0.25, "accuracy": 0.9}, tracker.Records[1].Metrics)
	assert.Len(t, tracker.Finished, 1)
}

func TestPublishIsolatesRowFailures(t *testing.T) {
	tracker := &datasource.TrackerStoreMock{FailingSteps: map[int64]bool{1: true}}
	publisher, err := NewPublisher(tracker)
	assert.NoError(t, err)

	table := align.NewTable()
	table.Set(0, "train/loss", align.SingleCell(0.5))
	table.Set(1, "train/loss", align.SingleCell(0.4))
	table.Set(2, "train/loss", align.SingleCell(0.3))

	mapping := align.IdentityMapping([]string{"train/loss"})
	stats, err := publisher.Publish(context.Background(), "proj", "exp", table, mapping, []string{"train/loss"})
	assert.NoError(t, err)
	assert.Equal(t, UploadStats{Rows: 3, Uploaded: 2, Failed: 1, Present: 1}, stats)
	assert.Len(t, tracker.Finished, 1)
}

func TestPublishSkipsNonNumericRows(t *testing.T) {
	tracker := &datasource.TrackerStoreMock{}
	publisher, err := NewPublisher(tracker)
	assert.NoError(t, err)

	table := align.NewTable()
	table.Set(0, "train/phase", align.SingleCell("warmup"))
	table.Set(1, "train/phase", align.SingleCell(1.0))

	mapping := align.IdentityMapping([]string{"train/phase"})
	stats, err := publisher.Publish(context.Background(), "proj", "exp", table, mapping, []string{"train/phase"})
	assert.NoError(t, err)
	assert.Equal(t, UploadStats{Rows: 2, Uploaded: 1, Present: 1}, stats)
	assert.Len(t, tracker.Records, 1)
	assert.Equal(t, int64(1), tracker.Records[0].Step)
}

func TestCoerceRecordTakesFirstNumericFromCollisions(t *testing.T) {
	metrics := coerceRecord(map[string]interface{}{
		"score": []interface{}{"n/a", 0.7, 0.9},
		"note":  []interface{}{"a", "b"},
	})
	assert.Equal(t, map[string]float64{"score": 0.7}, metrics)
}
