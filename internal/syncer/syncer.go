package syncer

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	"github.com/atlasml/alignsync/internal/align"
	"github.com/atlasml/alignsync/internal/cache"
	"github.com/atlasml/alignsync/internal/config"
	"github.com/atlasml/alignsync/internal/datasource"
	"github.com/atlasml/alignsync/internal/db"
	"github.com/atlasml/alignsync/internal/publisher"
)

var (
	ErrUnknownSource   = fmt.Errorf("source is not configured")
	ErrUnknownPlatform = fmt.Errorf("source platform is not supported")
	ErrNoAlignedData   = fmt.Errorf("no aligned rows were produced")
)

// Syncer drives one full alignment pass per source: fetch the sparse
// histories, densify each group, merge onto a single step axis, snapshot the
// result and publish it to the destination tracker.
type Syncer struct {
	cfg        *Config
	fileConfig *config.FileConfig
	stores     datasource.DataStores
	snapshots  cache.Store
	publisher  *publisher.Publisher
	history    db.SyncHistoryService
}

func NewSyncer(cfg *Config, fileConfig *config.FileConfig, stores datasource.DataStores, snapshots cache.Store, pub *publisher.Publisher, database db.Database) *Syncer {
	return &Syncer{
		cfg:        cfg,
		fileConfig: fileConfig,
		stores:     stores,
		snapshots:  snapshots,
		publisher:  pub,
		history:    database.SyncHistory(),
	}
}

// SyncAll runs every enabled source in name order. One source failing does
// not stop the others; the error is non-nil only when every source failed.
func (s *Syncer) SyncAll(ctx context.Context) error {
	names := s.fileConfig.EnabledSources()
	sort.Strings(names)

	var failures error
	for _, name := range names {
		if err := s.SyncSource(ctx, name); err != nil {
			log.Errorf("source %s failed to sync: %+v", name, err)
			failures = multierror.Append(failures, fmt.Errorf("source %s: %w", name, err))
		}
	}
	if failures != nil && len(failures.(*multierror.Error).Errors) == len(names) {
		return failures
	}
	return nil
}

func (s *Syncer) SyncSource(ctx context.Context, name string) error {
	source, ok := s.fileConfig.Sources[name]
	if !ok || !source.Enabled {
		return ErrUnknownSource
	}
	store, ok := s.stores.ForPlatform(source.Platform)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlatform, source.Platform)
	}

	table, err := s.alignedTable(ctx, name, source, store)
	if err != nil {
		return err
	}

	mapping := s.fileConfig.MappingFor(source)
	experimentName := s.fileConfig.Target.ExperimentName(source)
	stats, err := s.publisher.Publish(ctx, s.fileConfig.Target.Project, experimentName, table, mapping, s.fileConfig.AlignedMetrics)
	if err != nil {
		return err
	}

	entry, err := s.history.RecordSync(ctx, &db.SyncEntry{
		Source:       name,
		ExperimentId: experimentName,
		Rows:         int64(stats.Rows),
		Uploaded:     int64(stats.Uploaded),
		Failed:       int64(stats.Failed),
		Present:      int64(stats.Present),
		Missing:      int64(stats.Missing),
	})
	if err != nil {
		return err
	}

	log.Infof("source %s: %d rows aligned, %d uploaded, %d failed (sync %d)", name, stats.Rows, stats.Uploaded, stats.Failed, entry.Id)
	return nil
}

// alignedTable replays the cached snapshot when one exists, otherwise runs
// the fetch pipeline and stores the result before returning it.
func (s *Syncer) alignedTable(ctx context.Context, name string, source *config.SourceConfig, store datasource.SeriesStore) (*align.Table, error) {
	key := cache.Key{Source: name, Path: source.OutputFile}
	if cached, hit, err := s.snapshots.Lookup(key); err != nil {
		return nil, err
	} else if hit {
		log.Infof("source %s: replaying snapshot %s (%d rows)", name, source.OutputFile, cached.Len())
		return cached, nil
	}

	keys, err := store.ListMetricKeys(ctx, source.RunPath)
	if err != nil {
		return nil, err
	}

	classifier := align.NewClassifier(s.fileConfig.GroupsFor(source))
	partition := classifier.Partition(keys)

	fetcher := align.NewGroupFetcher(datasource.SeriesSourceForRun(store, source.RunPath), s.cfg.FetchWorkers)
	tables := make(map[string]*align.Table)
	for _, group := range classifier.Groups() {
		groupKeys := partition[group.Name]
		if len(groupKeys) == 0 {
			continue
		}
		series := fetcher.FetchGroup(ctx, group, groupKeys)
		tables[group.Name] = align.Densify(group, series)
	}

	table := align.Merge(classifier.Groups(), tables)
	if table.IsEmpty() {
		return nil, ErrNoAlignedData
	}

	if err := s.snapshots.Store(key, table); err != nil {
		return nil, err
	}
	return table, nil
}
