package sqlite

import (
	"context"

	"github.com/atlasml/alignsync/internal/db"
	lsql "github.com/atlasml/alignsync/pkg/sql"
)

type Database struct {
	instance    *lsql.Instance
	syncHistory db.SyncHistoryService
}

var _ db.Database = &Database{}

func NewDatabase(instance *lsql.Instance) db.Database {
	return &Database{
		instance:    instance,
		syncHistory: NewSyncHistory(instance),
	}
}

func (d *Database) SyncHistory() db.SyncHistoryService {
	return d.syncHistory
}

func (d *Database) Migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS sync_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		experiment_id TEXT NOT NULL,
		row_count INTEGER NOT NULL DEFAULT 0,
		uploaded INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		present INTEGER NOT NULL DEFAULT 0,
		missing INTEGER NOT NULL DEFAULT 0,
		synced_ts TIMESTAMP NOT NULL DEFAULT (datetime('now'))
	)
	`
	_, err := d.instance.ExecContext(ctx, query)
	return err
}
