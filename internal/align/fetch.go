package align

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Sample is one logged (native step, value) pair. A nil Value is a null
// sample: the backend logged the step without a value for this metric.
type Sample struct {
	Step  int64
	Value interface{}
}

// Series is the sparse history of one metric key. Samples may be unordered
// and steps may repeat; the densifier handles both.
type Series []Sample

// SeriesSource is the read boundary to a tracking backend, scoped to one
// run.
type SeriesSource interface {
	History(ctx context.Context, key string) (Series, error)
}

// GroupFetcher pulls the histories of a group's metric keys with a bounded
// number of concurrent backend calls. Backend latency dominates the
// pipeline, so keys are fetched in parallel.
type GroupFetcher struct {
	source  SeriesSource
	workers int
}

func NewGroupFetcher(source SeriesSource, workers int) *GroupFetcher {
	if workers < 1 {
		workers = 1
	}
	return &GroupFetcher{
		source:  source,
		workers: workers,
	}
}

// FetchGroup fetches every key's history concurrently. A failed key is
// logged and left out of the result; sibling fetches are not aborted and the
// group remains usable with reduced columns.
func (f *GroupFetcher) FetchGroup(ctx context.Context, group Group, keys []string) map[string]Series {
	results := make(map[string]Series, len(keys))
	var lock sync.Mutex

	var eg errgroup.Group
	eg.SetLimit(f.workers)
	for _, key := range keys {
		key := key
		eg.Go(func() error {
			series, err := f.source.History(ctx, key)
			if err != nil {
				log.Printf("failed to fetch history for metric %s in group %s: %s", key, group.Name, err)
				return nil
			}
			lock.Lock()
			results[key] = series
			lock.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	return results
}
