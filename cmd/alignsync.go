package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/atlasml/alignsync/internal/cache"
	"github.com/atlasml/alignsync/internal/config"
	"github.com/atlasml/alignsync/internal/datasource"
	"github.com/atlasml/alignsync/internal/db"
	"github.com/atlasml/alignsync/internal/syncer"
	"github.com/atlasml/alignsync/pkg/app"
	"github.com/atlasml/alignsync/pkg/clientbase"
	"github.com/atlasml/alignsync/pkg/reconciler"
)

type dependencies struct {
	cfg               *config.Config
	app               *app.Instance
	database          db.Database
	connections       *clientbase.Connections
	dataStores        datasource.DataStores
	syncer            *syncer.Syncer
	sourcesReconciler *reconciler.Manager[string]
}

func newDependencies(app *app.Instance, cfg *config.Config, database db.Database,
	connections *clientbase.Connections, dataStores datasource.DataStores,
	s *syncer.Syncer, sourcesReconciler *reconciler.Manager[string]) *dependencies {
	return &dependencies{
		cfg:               cfg,
		app:               app,
		database:          database,
		connections:       connections,
		dataStores:        dataStores,
		syncer:            s,
		sourcesReconciler: sourcesReconciler,
	}
}

func NewFilesystem() afero.Fs {
	return afero.NewOsFs()
}

func NewSnapshotStore(fs afero.Fs) cache.Store {
	return cache.NewCSVStore(fs)
}

func NewTrackerStore(stores datasource.DataStores) datasource.TrackerStore {
	return stores.Tracker
}

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetReportCaller(true)
	deps, err := InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	if err := deps.database.Migrate(deps.app.Context()); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if deps.cfg.Daemon {
		// Keep re-aligning the sources until told to stop
		deps.sourcesReconciler.Start()
		defer deps.sourcesReconciler.Finish()

		deps.app.WaitForFinish()
		return
	}

	syncErr := deps.syncer.SyncAll(deps.app.Context())
	deps.app.Stop(syncErr != nil)
	deps.app.WaitForFinish()
}
