package datasource

import (
	"context"

	"github.com/atlasml/alignsync/internal/align"
	"github.com/atlasml/alignsync/pkg/clientbase"
)

// SeriesStore is the read boundary to a source tracking backend. Callers
// must tolerate missing keys, empty results and out-of-order samples.
type SeriesStore interface {
	ListMetricKeys(ctx context.Context, runPath string) ([]string, error)
	History(ctx context.Context, runPath string, key string) (align.Series, error)
}

// TrackerStore is the write boundary to the destination tracker.
type TrackerStore interface {
	CreateExperiment(ctx context.Context, project string, name string, config map[string]string) (string, error)
	LogRecord(ctx context.Context, experimentId string, step int64, metrics map[string]float64) error
	FinishExperiment(ctx context.Context, experimentId string) error
}

type DataStores struct {
	WandB   SeriesStore
	SwanLab SeriesStore
	Tracker TrackerStore
}

func NewDataStores(cfg *Config, connections *clientbase.Connections) DataStores {
	swanlab := NewSwanLab(cfg.SwanLabBaseUrl, cfg, connections)
	return DataStores{
		WandB:   NewWandB(cfg.WandBBaseUrl, cfg, connections),
		SwanLab: swanlab,
		Tracker: swanlab,
	}
}

// ForPlatform selects the series store a source's platform name refers to.
func (s DataStores) ForPlatform(platform string) (SeriesStore, bool) {
	switch platform {
	case "wandb":
		return s.WandB, true
	case "swanlab":
		return s.SwanLab, true
	default:
		return nil, false
	}
}

type runScopedSource struct {
	store   SeriesStore
	runPath string
}

func (s *runScopedSource) History(ctx context.Context, key string) (align.Series, error) {
	return s.store.History(ctx, s.runPath, key)
}

// SeriesSourceForRun binds a store to one run so the fetcher can pull
// per-key histories without knowing run identities.
func SeriesSourceForRun(store SeriesStore, runPath string) align.SeriesSource {
	return &runScopedSource{store: store, runPath: runPath}
}
