package models

// RunStatus is the lifecycle state of a training run as tracked by the core
// service. The worker only ever moves a run forward: processing, then exactly
// one of completed or failed.
type RunStatus string

const (
	RunProcessing RunStatus = "processing"
	RunCompleted  RunStatus = "completed"
	RunFailed     RunStatus = "failed"
)

// RunMessage is the payload of one message on the runs topic.
type RunMessage struct {
	UserId        int64          `json:"user_id"`
	DatasetS3Path string         `json:"dataset_s3_path"`
	RunId         int64          `json:"run_id"`
	Configuration map[string]any `json:"configuration"`
}

type StatusUpdateRequest struct {
	Status RunStatus `json:"status"`
}

type SplitMetrics struct {
	R2Score          float64 `json:"r2_score"`
	MeanSquaredError float64 `json:"mean_squared_error"`
}

// Metrics is the evaluation document published to object storage for each run.
type Metrics struct {
	Train SplitMetrics `json:"train"`
	Test  SplitMetrics `json:"test"`
}

type ParameterInfo struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Default  any      `json:"default"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Step     float64  `json:"step,omitempty"`
	Options  []any    `json:"options,omitempty"`
	Nullable bool     `json:"nullable,omitempty"`
}

type ModelInfo struct {
	Name       string          `json:"name"`
	Parameters []ParameterInfo `json:"parameters"`
}

// CatalogResponse is returned by GET /models for client-side form generation.
type CatalogResponse struct {
	Models []ModelInfo `json:"models"`
}
