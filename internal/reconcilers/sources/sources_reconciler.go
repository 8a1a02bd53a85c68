package sources

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/atlasml/alignsync/internal/config"
	"github.com/atlasml/alignsync/internal/syncer"
	"github.com/atlasml/alignsync/pkg/app"
	"github.com/atlasml/alignsync/pkg/reconciler"
)

// Reconciler re-syncs every enabled source on a fixed cadence. Items are
// source names; a failed sync is retried by the queue with backoff.
type Reconciler struct {
	config     *Config
	fileConfig *config.FileConfig
	syncer     *syncer.Syncer
}

func NewReconciler(cfg *Config, fileConfig *config.FileConfig, s *syncer.Syncer) *Reconciler {
	return &Reconciler{
		config:     cfg,
		fileConfig: fileConfig,
		syncer:     s,
	}
}

func (r *Reconciler) Name() string {
	return "sources-reconciler"
}

func (r *Reconciler) Resync(_ context.Context, queue *reconciler.ReconcileQueue[string]) {
	if !r.config.Enabled {
		return
	}
	log.Debugln("beginning source reconciler resync")

	names := r.fileConfig.EnabledSources()
	if len(names) > 0 {
		log.Debugf("queueing %d sources for alignment", len(names))
	}
	for _, name := range names {
		queue.Add(name)
	}

	log.Debugln("completing source reconciler resync")
}

func (r *Reconciler) Reconcile(ctx context.Context, items []reconciler.ReconcileItem[string]) {
	log.Debugf("reconciling %d sources", len(items))
	for _, item := range items {
		err := r.syncer.SyncSource(ctx, item.ID)
		if err != nil {
			log.Printf("failed to sync source %s: %s", item.ID, err)
		}
		item.Callback(err)
	}
}

func NewReconcilerManager(instance *app.Instance, cfg *Config, rec *Reconciler) (*reconciler.Manager[string], error) {
	log.Println("source reconciler initializing")
	reconcilerConfig, err := reconciler.NewConfig(cfg.ResyncFrequency, cfg.MaxWorkers, cfg.RunMaxItems)

	if err != nil {
		return nil, err
	}
	return reconciler.NewManager[string](instance.Context(), reconcilerConfig, rec), nil
}
