package publisher

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	"github.com/atlasml/alignsync/internal/align"
	"github.com/atlasml/alignsync/internal/datasource"
)

var ErrNoTracker = fmt.Errorf("publisher requires a tracker store")

// UploadStats counts the outcome of pushing one aligned table.
type UploadStats struct {
	Rows     int
	Uploaded int
	Failed   int
	Present  int
	Missing  int
}

type Publisher struct {
	tracker datasource.TrackerStore
}

func NewPublisher(tracker datasource.TrackerStore) (*Publisher, error) {
	if tracker == nil {
		return nil, ErrNoTracker
	}
	return &Publisher{tracker: tracker}, nil
}

// Publish creates a destination experiment and logs every table row under the
// mapping's canonical names. A row that fails to log is counted and skipped;
// the remaining rows still go out. The experiment is finished either way.
func (p *Publisher) Publish(ctx context.Context, project string, name string, table *align.Table, mapping align.Mapping, canonical []string) (UploadStats, error) {
	stats := UploadStats{Rows: table.Len()}

	alignment := align.Report(table.Columns(), canonical, mapping)
	stats.Present = len(alignment.Present)
	stats.Missing = len(alignment.Missing)
	log.Infof("experiment %s: %d/%d canonical metrics aligned", name, len(alignment.Present), len(canonical))
	for _, metric := range alignment.Present {
		log.Infof("  aligned: %s", metric)
	}
	for _, metric := range alignment.Missing {
		log.Warnf("  missing: %s", metric)
	}

	experimentId, err := p.tracker.CreateExperiment(ctx, project, name, map[string]string{
		"aligned_metrics": fmt.Sprintf("%d", len(alignment.Present)),
	})
	if err != nil {
		return stats, err
	}

	var failures error
	for _, step := range table.Steps() {
		metrics := coerceRecord(align.Project(table.Row(step), mapping))
		if len(metrics) == 0 {
			continue
		}
		if err := p.tracker.LogRecord(ctx, experimentId, step, metrics); err != nil {
			stats.Failed++
			failures = multierror.Append(failures, fmt.Errorf("step %d: %w", step, err))
			continue
		}
		stats.Uploaded++
	}
	if failures != nil {
		log.Warnf("experiment %s: %d of %d rows failed to upload: %s", name, stats.Failed, stats.Rows, failures)
	}

	if err := p.tracker.FinishExperiment(ctx, experimentId); err != nil {
		return stats, err
	}
	return stats, nil
}

// coerceRecord keeps the numeric slice of a projected row. Collided cells
// contribute their first numeric value, matching the keep-first rule used
// when duplicate columns merge.
func coerceRecord(projected map[string]interface{}) map[string]float64 {
	metrics := make(map[string]float64, len(projected))
	for name, value := range projected {
		if values, ok := value.([]interface{}); ok {
			for _, candidate := range values {
				if f, ok := align.CoerceFloat(candidate); ok {
					metrics[name] = f
					break
				}
			}
			continue
		}
		if f, ok := align.CoerceFloat(value); ok {
			metrics[name] = f
		}
	}
	return metrics
}
