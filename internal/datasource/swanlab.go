package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/atlasml/alignsync/internal/align"
	"github.com/atlasml/alignsync/pkg/clientbase"
	cbhttp "github.com/atlasml/alignsync/pkg/clientbase/http"
)

// SwanLab talks to a SwanLab compatible open API, both as a source of
// exported metric series and as the destination tracker for aligned log
// records.
type SwanLab struct {
	baseUrl     string
	cfg         *Config
	connections *clientbase.Connections
}

var _ SeriesStore = &SwanLab{}
var _ TrackerStore = &SwanLab{}

func NewSwanLab(baseUrl string, cfg *Config, connections *clientbase.Connections) *SwanLab {
	return &SwanLab{
		baseUrl:     baseUrl,
		cfg:         cfg,
		connections: connections,
	}
}

func (s *SwanLab) auth() cbhttp.RequestOption {
	return cbhttp.BearerAuth(s.cfg.SwanLabApiKey)
}

func (s *SwanLab) ListMetricKeys(ctx context.Context, experimentId string) ([]string, error) {
	url := fmt.Sprintf("%s/api/v1/experiments/%s/keys", s.baseUrl, experimentId)
	req := cbhttp.NewRequest(ctx, "GET", url,
		s.auth(),
		cbhttp.RetryAttempts(s.cfg.RetryAttempts),
		cbhttp.RetryIf(cbhttp.RetryIfBaseError),
	)
	resp, herr := s.connections.HttpClient.Do(req)
	if herr != nil {
		log.Debugf("failed to fetch metric keys for experiment %s: %s", experimentId, herr)
		return nil, herr
	}
	defer resp.Close()

	body, err := io.ReadAll(resp)
	if err != nil {
		return nil, err
	}

	var keysResponse KeysResponse
	if err := json.Unmarshal(body, &keysResponse); err != nil {
		log.Debugf("failed to unmarshal metric keys for experiment %s: %s", experimentId, err)
		return nil, err
	}
	return keysResponse.Keys, nil
}

func (s *SwanLab) History(ctx context.Context, experimentId string, key string) (align.Series, error) {
	if key == "" {
		return nil, fmt.Errorf("metric key is required")
	}

	url := fmt.Sprintf("%s/api/v1/experiments/%s/metrics", s.baseUrl, experimentId)
	req := cbhttp.NewRequest(ctx, "GET", url,
		s.auth(),
		cbhttp.QueryValue("keys", key),
		cbhttp.RetryAttempts(s.cfg.RetryAttempts),
		cbhttp.RetryIf(cbhttp.RetryIfBaseError),
	)
	resp, herr := s.connections.HttpClient.Do(req)
	if herr != nil {
		log.Debugf("failed to export metric %s for experiment %s: %s", key, experimentId, herr)
		return nil, herr
	}
	defer resp.Close()

	body, err := io.ReadAll(resp)
	if err != nil {
		return nil, err
	}

	var export MetricsExportResponse
	if err := json.Unmarshal(body, &export); err != nil {
		log.Debugf("failed to unmarshal metric export for %s: %s", key, err)
		return nil, err
	}
	if export.ErrMsg != "" {
		return nil, fmt.Errorf("metric export failed for %s: %s", key, export.ErrMsg)
	}

	series := make(align.Series, 0)
	for _, metric := range export.Metrics {
		if metric.Key != key {
			continue
		}
		for _, point := range metric.Points {
			series = append(series, align.Sample{Step: point.Index, Value: point.Value})
		}
	}
	return series, nil
}

func (s *SwanLab) CreateExperiment(ctx context.Context, project string, name string, config map[string]string) (string, error) {
	url := fmt.Sprintf("%s/api/v1/projects/%s/experiments", s.baseUrl, project)
	body := CreateExperimentRequest{
		Name:    name,
		Project: project,
		Config:  config,
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		log.Debugf("failed to encode body: %s", err)
		return "", err
	}

	req := cbhttp.NewRequest(ctx, "POST", url,
		s.auth(),
		cbhttp.JsonBody(encoded),
		cbhttp.RetryAttempts(s.cfg.RetryAttempts),
		cbhttp.RetryIf(cbhttp.RetryIfBaseError),
	)
	resp, herr := s.connections.HttpClient.Do(req)
	if herr != nil {
		log.Debugf("failed to create experiment %s: %s", name, herr)
		return "", herr
	}
	defer resp.Close()

	respBody, err := io.ReadAll(resp)
	if err != nil {
		return "", err
	}

	var created CreateExperimentResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		log.Debugf("failed to unmarshal experiment response: %s", err)
		return "", err
	}
	return created.ExperimentId, nil
}

func (s *SwanLab) LogRecord(ctx context.Context, experimentId string, step int64, metrics map[string]float64) error {
	url := fmt.Sprintf("%s/api/v1/experiments/%s/log", s.baseUrl, experimentId)
	body := LogRecordRequest{
		Step:    step,
		Metrics: metrics,
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req := cbhttp.NewRequest(ctx, "POST", url,
		s.auth(),
		cbhttp.JsonBody(encoded),
	)
	if herr := s.connections.HttpClient.DoNoResponse(req); herr != nil {
		return herr
	}
	return nil
}

func (s *SwanLab) FinishExperiment(ctx context.Context, experimentId string) error {
	url := fmt.Sprintf("%s/api/v1/experiments/%s/finish", s.baseUrl, experimentId)
	req := cbhttp.NewRequest(ctx, "POST", url, s.auth())
	if herr := s.connections.HttpClient.DoNoResponse(req); herr != nil {
		log.Debugf("failed to finish experiment %s: %s", experimentId, herr)
		return herr
	}
	return nil
}
