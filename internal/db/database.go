package db

import (
	"context"

	_ "github.com/mattn/go-sqlite3" // Import go-sqlite3 library
)

type Database interface {
	SyncHistory() SyncHistoryService
	Migrate(ctx context.Context) error
}
