package db

import (
	"context"
	"time"
)

// SyncEntry records one completed alignment sync of a source.
type SyncEntry struct {
	Id           int64
	Source       string
	ExperimentId string
	Rows         int64
	Uploaded     int64
	Failed       int64
	Present      int64
	Missing      int64
	SyncedTs     time.Time
}

type SyncHistoryService interface {
	RecordSync(ctx context.Context, entry *SyncEntry) (*SyncEntry, error)
	GetLastSync(ctx context.Context, source string) (*SyncEntry, error)
	ListSyncs(ctx context.Context, source string) ([]*SyncEntry, error)
}
