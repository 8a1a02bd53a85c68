package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/atlasml/alignsync/internal/align"
	"github.com/atlasml/alignsync/pkg/clientbase"
	cbhttp "github.com/atlasml/alignsync/pkg/clientbase/http"
)

const nativeStepKey = "_step"

// WandB reads run histories from a Weights & Biases compatible REST API.
// Histories are scanned one metric key at a time: asking the backend for
// several keys at once makes it merge rows and drop samples.
type WandB struct {
	baseUrl     string
	cfg         *Config
	connections *clientbase.Connections
}

var _ SeriesStore = &WandB{}

func NewWandB(baseUrl string, cfg *Config, connections *clientbase.Connections) *WandB {
	return &WandB{
		baseUrl:     baseUrl,
		cfg:         cfg,
		connections: connections,
	}
}

func (w *WandB) ListMetricKeys(ctx context.Context, runPath string) ([]string, error) {
	url := fmt.Sprintf("%s/api/v1/runs/%s/history-keys", w.baseUrl, runPath)
	req := cbhttp.NewRequest(ctx, "GET", url,
		cbhttp.BearerAuth(w.cfg.WandBApiKey),
		cbhttp.RetryAttempts(w.cfg.RetryAttempts),
		cbhttp.RetryIf(cbhttp.RetryIfBaseError),
	)
	resp, herr := w.connections.HttpClient.Do(req)
	if herr != nil {
		log.Debugf("failed to fetch history keys for run %s: %s", runPath, herr)
		return nil, herr
	}
	defer resp.Close()

	body, err := io.ReadAll(resp)
	if err != nil {
		return nil, err
	}

	var keysResponse HistoryKeysResponse
	if err := json.Unmarshal(body, &keysResponse); err != nil {
		log.Debugf("failed to unmarshal history keys for run %s: %s", runPath, err)
		return nil, err
	}

	keys := make([]string, 0, len(keysResponse.Keys))
	for key := range keysResponse.Keys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (w *WandB) History(ctx context.Context, runPath string, key string) (align.Series, error) {
	if key == "" {
		return nil, fmt.Errorf("metric key is required")
	}

	url := fmt.Sprintf("%s/api/v1/runs/%s/scan-history", w.baseUrl, runPath)
	series := make(align.Series, 0)
	token := ""
	done := false
	for {
		if done {
			break
		}

		body := ScanHistoryRequest{
			Keys:      []string{key, nativeStepKey},
			PageToken: token,
			PageSize:  w.cfg.PageSize,
		}
		encoded, err := json.Marshal(body)
		if err != nil {
			log.Debugf("failed to encode body: %s", err)
			return nil, err
		}

		req := cbhttp.NewRequest(ctx, "POST", url,
			cbhttp.BearerAuth(w.cfg.WandBApiKey),
			cbhttp.JsonBody(encoded),
			cbhttp.RetryAttempts(w.cfg.RetryAttempts),
			cbhttp.RetryIf(cbhttp.RetryIfBaseError),
		)
		resp, herr := w.connections.HttpClient.Do(req)
		if herr != nil {
			log.Debugf("failed to scan history for %s in run %s: %s", key, runPath, herr)
			return nil, herr
		}

		respBody, err := io.ReadAll(resp)
		resp.Close()
		if err != nil {
			return nil, err
		}

		var page ScanHistoryResponse
		if err := json.Unmarshal(respBody, &page); err != nil {
			log.Debugf("failed to unmarshal history page for %s: %s", key, err)
			return nil, err
		}

		for _, row := range page.Rows {
			step, ok := align.CoerceStep(row[nativeStepKey])
			if !ok {
				continue
			}
			series = append(series, align.Sample{Step: step, Value: row[key]})
		}

		if page.NextPageToken == "" {
			done = true
		} else {
			token = page.NextPageToken
		}
	}

	return series, nil
}
