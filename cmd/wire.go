//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/atlasml/alignsync/internal/config"
	"github.com/atlasml/alignsync/internal/datasource"
	"github.com/atlasml/alignsync/internal/db/sqlite"
	"github.com/atlasml/alignsync/internal/publisher"
	recsources "github.com/atlasml/alignsync/internal/reconcilers/sources"
	"github.com/atlasml/alignsync/internal/syncer"
	"github.com/atlasml/alignsync/pkg/app"
	"github.com/atlasml/alignsync/pkg/clientbase"
	cbhttp "github.com/atlasml/alignsync/pkg/clientbase/http"
	lsql "github.com/atlasml/alignsync/pkg/sql"
)

// wire up the dependencies.
func InitializeDependencies() (*dependencies, error) {
	wire.Build(config.NewConfigFromEnv, app.NewInstance,
		cbhttp.NewConfigFromEnv, cbhttp.NewInstance, clientbase.NewConfigFromEnv, clientbase.NewConnections,
		lsql.NewConfigFromEnv, lsql.NewInstance, sqlite.NewDatabase,
		NewFilesystem, NewSnapshotStore, NewTrackerStore,
		config.NewFileConfig,
		datasource.NewConfigFromEnv, datasource.NewDataStores,
		publisher.NewPublisher,
		syncer.NewConfigFromEnv, syncer.NewSyncer,
		recsources.NewConfigFromEnv, recsources.NewReconciler, recsources.NewReconcilerManager,
		newDependencies)
	return &dependencies{}, nil
}
