package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"train-service/internal/core"
	"train-service/internal/storage"
	"train-service/pkg/models"
)

var ErrPublish = errors.New("artifact publish failed")

func ModelKey(runId int64) string   { return fmt.Sprintf("runs/%d/model.json", runId) }
func MetricsKey(runId int64) string { return fmt.Sprintf("runs/%d/metrics.json", runId) }

// ArtifactPublisher writes the serialized fitted model and metrics document
// for a run. Writes are sequential and best-effort; a retried run with the
// same id overwrites its previous artifacts.
type ArtifactPublisher struct {
	store  storage.ObjectStore
	bucket string
}

func NewArtifactPublisher(store storage.ObjectStore, bucket string) *ArtifactPublisher {
	return &ArtifactPublisher{store: store, bucket: bucket}
}

type modelDocument struct {
	Model   string         `json:"model"`
	Weights core.Regressor `json:"weights"`
}

func (p *ArtifactPublisher) Publish(ctx context.Context, runId int64, modelName string, fitted core.Regressor, metrics models.Metrics) error {
	modelBody, err := json.Marshal(modelDocument{Model: modelName, Weights: fitted})
	if err != nil {
		return fmt.Errorf("%w: failed to serialize model: %v", ErrPublish, err)
	}
	if err := p.store.PutObject(ctx, p.bucket, ModelKey(runId), bytes.NewReader(modelBody)); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	metricsBody, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("%w: failed to serialize metrics: %v", ErrPublish, err)
	}
	if err := p.store.PutObject(ctx, p.bucket, MetricsKey(runId), bytes.NewReader(metricsBody)); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	slog.Info("artifacts published", "run_id", runId, "bucket", p.bucket)
	return nil
}
