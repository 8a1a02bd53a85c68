package datasource

// HistoryRow is one raw logged row from a source tracker: the native step
// plus whatever metric values the row carried. Values stay opaque; a missing
// or JSON-null value is a null sample.
type HistoryRow map[string]interface{}

type HistoryKeysResponse struct {
	Keys map[string]HistoryKeyInfo `json:"keys"`
}

type HistoryKeyInfo struct {
	Count    int64 `json:"count"`
	LastStep int64 `json:"last_step"`
}

type ScanHistoryRequest struct {
	Keys      []string `json:"keys"`
	PageToken string   `json:"page_token,omitempty"`
	PageSize  int      `json:"page_size,omitempty"`
}

type ScanHistoryResponse struct {
	Rows          []HistoryRow `json:"rows"`
	NextPageToken string       `json:"next_page_token"`
}

type MetricPoint struct {
	Index int64       `json:"index"`
	Value interface{} `json:"value"`
}

type ExportedMetric struct {
	Key    string        `json:"key"`
	Points []MetricPoint `json:"points"`
}

type MetricsExportResponse struct {
	Metrics []ExportedMetric `json:"metrics"`
	ErrMsg  string           `json:"errmsg"`
}

type KeysResponse struct {
	Keys []string `json:"keys"`
}

type CreateExperimentRequest struct {
	Name    string            `json:"name"`
	Project string            `json:"project"`
	Config  map[string]string `json:"config,omitempty"`
}

type CreateExperimentResponse struct {
	ExperimentId string `json:"experiment_id"`
}

type LogRecordRequest struct {
	Step    int64              `json:"step"`
	Metrics map[string]float64 `json:"metrics"`
}
