package datasource

import (
	"context"
	"fmt"
	"sync"

	"github.com/atlasml/alignsync/internal/align"
)

type SeriesStoreMock struct {
	KeysByRun   map[string][]string
	SeriesByRun map[string]map[string]align.Series
	FailingKeys map[string]bool
}

var _ SeriesStore = &SeriesStoreMock{}

func (m *SeriesStoreMock) ListMetricKeys(_ context.Context, runPath string) ([]string, error) {
	keys, ok := m.KeysByRun[runPath]
	if !ok {
		return nil, fmt.Errorf("unknown run %s", runPath)
	}
	return keys, nil
}

func (m *SeriesStoreMock) History(_ context.Context, runPath string, key string) (align.Series, error) {
	if key == "" {
		return nil, fmt.Errorf("metric key is required")
	}
	if m.FailingKeys[key] {
		return nil, fmt.Errorf("injected failure for %s", key)
	}
	if series, ok := m.SeriesByRun[runPath]; ok {
		return series[key], nil
	}
	return nil, nil
}

type LoggedRecord struct {
	ExperimentId string
	Step         int64
	Metrics      map[string]float64
}

type TrackerStoreMock struct {
	lock         sync.Mutex
	Records      []LoggedRecord
	Finished     []string
	FailingSteps map[int64]bool
	nextId       int
}

var _ TrackerStore = &TrackerStoreMock{}

func (m *TrackerStoreMock) CreateExperiment(_ context.Context, project string, name string, _ map[string]string) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.nextId++
	return fmt.Sprintf("%s/%s/%d", project, name, m.nextId), nil
}

func (m *TrackerStoreMock) LogRecord(_ context.Context, experimentId string, step int64, metrics map[string]float64) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.FailingSteps[step] {
		return fmt.Errorf("injected failure for step %d", step)
	}
	m.Records = append(m.Records, LoggedRecord{
		ExperimentId: experimentId,
		Step:         step,
		Metrics:      metrics,
	})
	return nil
}

func (m *TrackerStoreMock) FinishExperiment(_ context.Context, experimentId string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.Finished = append(m.Finished, experimentId)
	return nil
}
