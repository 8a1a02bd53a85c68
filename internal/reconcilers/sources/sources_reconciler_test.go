package sources

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/atlasml/alignsync/internal/align"
	"github.com/atlasml/alignsync/internal/cache"
	"github.com/atlasml/alignsync/internal/config"
	"github.com/atlasml/alignsync/internal/datasource"
	"github.com/atlasml/alignsync/internal/db"
	"github.com/atlasml/alignsync/internal/publisher"
	"github.com/atlasml/alignsync/internal/syncer"
	"github.com/atlasml/alignsync/pkg/reconciler"
)

func testSyncer(t *testing.T, fileConfig *config.FileConfig, tracker *datasource.TrackerStoreMock) *syncer.Syncer {
	series := &datasource.SeriesStoreMock{
		KeysByRun: map[string][]string{
			"team/proj/run1": {"train/step", "train/loss"},
		},
		SeriesByRun: map[string]map[string]align.Series{
			"team/proj/run1": {
				"train/step": {{Step: 0, Value: int64(0)}},
				"train/loss": {{Step: 0, Value: 0.5}},
			},
		},
	}
	pub, err := publisher.NewPublisher(tracker)
	assert.NoError(t, err)

	stores := datasource.DataStores{WandB: series, SwanLab: series, Tracker: tracker}
	return syncer.NewSyncer(&syncer.Config{FetchWorkers: 2}, fileConfig, stores, cache.NewCSVStore(afero.NewMemMapFs()), pub, &db.DatabaseMock{})
}

func testFileConfig() *config.FileConfig {
	return &config.FileConfig{
		AlignedMetrics: []string{"loss"},
		Target:         config.TargetConfig{Project: "proj"},
		Sources: map[string]*config.SourceConfig{
			"baseline": {
				Enabled:          true,
				Platform:         "wandb",
				RunPath:          "team/proj/run1",
				TargetExperiment: "baseline-aligned",
				OutputFile:       "out/baseline.csv",
				Mapping:          map[string]string{"train/loss": "loss"},
			},
			"disabled": {Enabled: false},
		},
	}
}

func TestResyncQueuesEnabledSources(t *testing.T) {
	fileConfig := testFileConfig()
	tracker := &datasource.TrackerStoreMock{}
	rec := NewReconciler(&Config{Enabled: true}, fileConfig, testSyncer(t, fileConfig, tracker))

	queue := reconciler.NewReconcileQueue[string]()
	rec.Resync(context.Background(), queue)

	items := queue.Pop(10)
	assert.Len(t, items, 1)
	assert.Equal(t, "baseline", items[0].ID)
}

func TestResyncSkipsWhenDisabled(t *testing.T) {
	fileConfig := testFileConfig()
	tracker := &datasource.TrackerStoreMock{}
	rec := NewReconciler(&Config{Enabled: false}, fileConfig, testSyncer(t, fileConfig, tracker))

	queue := reconciler.NewReconcileQueue[string]()
	rec.Resync(context.Background(), queue)
	assert.Equal(t, 0, len(queue.Pending))
}

func TestReconcileSyncsQueuedSources(t *testing.T) {
	fileConfig := testFileConfig()
	tracker := &datasource.TrackerStoreMock{}
	rec := NewReconciler(&Config{Enabled: true}, fileConfig, testSyncer(t, fileConfig, tracker))

	var callbackErr error
	items := []reconciler.ReconcileItem[string]{
		{ID: "baseline", Callback: func(err error) { callbackErr = err }},
	}
	rec.Reconcile(context.Background(), items)

	assert.NoError(t, callbackErr)
	assert.Len(t, tracker.Records, 1)
	assert.Len(t, tracker.Finished, 1)
}

func TestReconcileReportsFailuresToQueue(t *testing.T) {
	fileConfig := testFileConfig()
	tracker := &datasource.TrackerStoreMock{}
	rec := NewReconciler(&Config{Enabled: true}, fileConfig, testSyncer(t, fileConfig, tracker))

	var callbackErr error
	items := []reconciler.ReconcileItem[string]{
		{ID: "unknown", Callback: func(err error) { callbackErr = err }},
	}
	rec.Reconcile(context.Background(), items)

	assert.ErrorIs(t, callbackErr, syncer.ErrUnknownSource)
}
