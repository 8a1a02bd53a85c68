package db

import (
	"context"
	"sync"
	"time"
)

type SyncHistoryServiceMock struct {
	lock    sync.Mutex
	Entries []*SyncEntry
	nextId  int64
}

var _ SyncHistoryService = &SyncHistoryServiceMock{}

func (m *SyncHistoryServiceMock) RecordSync(_ context.Context, entry *SyncEntry) (*SyncEntry, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.nextId++
	recorded := &SyncEntry{
		Id:           m.nextId,
		Source:       entry.Source,
		ExperimentId: entry.ExperimentId,
		Rows:         entry.Rows,
		Uploaded:     entry.Uploaded,
		Failed:       entry.Failed,
		Present:      entry.Present,
		Missing:      entry.Missing,
		SyncedTs:     time.Now(),
	}
	m.Entries = append(m.Entries, recorded)
	return recorded, nil
}

func (m *SyncHistoryServiceMock) GetLastSync(_ context.Context, source string) (*SyncEntry, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].Source == source {
			return m.Entries[i], nil
		}
	}
	return nil, nil
}

func (m *SyncHistoryServiceMock) ListSyncs(_ context.Context, source string) ([]*SyncEntry, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	entries := make([]*SyncEntry, 0)
	for _, entry := range m.Entries {
		if entry.Source == source {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type DatabaseMock struct {
	History SyncHistoryServiceMock
}

var _ Database = &DatabaseMock{}

func (m *DatabaseMock) SyncHistory() SyncHistoryService {
	return &m.History
}

func (m *DatabaseMock) Migrate(_ context.Context) error {
	return nil
}
