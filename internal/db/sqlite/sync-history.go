package sqlite

import (
	"context"
	"database/sql"

	"github.com/atlasml/alignsync/internal/db"
	lsql "github.com/atlasml/alignsync/pkg/sql"
)

type SyncHistory struct {
	db *lsql.Instance
}

var _ db.SyncHistoryService = &SyncHistory{}

func NewSyncHistory(instance *lsql.Instance) db.SyncHistoryService {
	return &SyncHistory{
		db: instance,
	}
}

func (s *SyncHistory) RecordSync(ctx context.Context, entry *db.SyncEntry) (*db.SyncEntry, error) {
	query := `
	INSERT INTO sync_history (source, experiment_id, row_count, uploaded, failed, present, missing, synced_ts)
	VALUES (?, ?, ?, ?, ?, ?, ?, datetime('now'))
	`
	args := []interface{}{entry.Source, entry.ExperimentId, entry.Rows, entry.Uploaded, entry.Failed, entry.Present, entry.Missing}
	id, err := s.db.ExecAndReturnId(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return s.getSyncById(ctx, id)
}

func (s *SyncHistory) GetLastSync(ctx context.Context, source string) (*db.SyncEntry, error) {
	query := `
	SELECT id, source, experiment_id, row_count, uploaded, failed, present, missing, synced_ts
	FROM sync_history
	WHERE source = ?
	ORDER BY id DESC
	LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query, source)

	entry, err := SyncEntryInstance(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (s *SyncHistory) ListSyncs(ctx context.Context, source string) ([]*db.SyncEntry, error) {
	query := `
	SELECT id, source, experiment_id, row_count, uploaded, failed, present, missing, synced_ts
	FROM sync_history
	WHERE source = ?
	ORDER BY id
	`
	args := []interface{}{source}
	rows, err := s.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}
	response := make([]*db.SyncEntry, 0)
	for rows.Next() {
		if entry, err := SyncEntryInstance(rows); err != nil {
			return nil, err
		} else {
			response = append(response, entry)
		}
	}

	return response, nil
}

func (s *SyncHistory) getSyncById(ctx context.Context, id int64) (*db.SyncEntry, error) {
	query := `
	SELECT id, source, experiment_id, row_count, uploaded, failed, present, missing, synced_ts
	FROM sync_history
	WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)

	return SyncEntryInstance(row)
}

func SyncEntryInstance(scanner lsql.RowScanner) (*db.SyncEntry, error) {
	entry := &db.SyncEntry{}
	if err := scanner.Scan(&entry.Id, &entry.Source, &entry.ExperimentId, &entry.Rows, &entry.Uploaded, &entry.Failed, &entry.Present, &entry.Missing, &entry.SyncedTs); err != nil {
		return nil, err
	}
	return entry, nil
}
