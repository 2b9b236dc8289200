package worker

import (
	"context"
	"errors"
	"log/slog"

	"train-service/internal/core"
	"train-service/internal/dataset"
	"train-service/internal/messaging"
	"train-service/internal/registry"
	"train-service/internal/reporting"
	"train-service/internal/storage"
	"train-service/pkg/models"
)

// Worker drives the per-message pipeline: decode, report processing, resolve
// configuration, load the dataset, train and evaluate, publish artifacts,
// report the terminal state, commit the offset. Messages are handled one at a
// time so that status transitions and offset commits stay in delivery order.
type Worker struct {
	receiver  messaging.Receiver
	registry  *registry.Registry
	store     storage.ObjectStore
	reporter  reporting.StatusReporter
	artifacts *ArtifactPublisher
}

func New(receiver messaging.Receiver, reg *registry.Registry, store storage.ObjectStore, reporter reporting.StatusReporter, artifactBucket string) *Worker {
	return &Worker{
		receiver:  receiver,
		registry:  reg,
		store:     store,
		reporter:  reporter,
		artifacts: NewArtifactPublisher(store, artifactBucket),
	}
}

// Run polls until ctx is cancelled. A message fetched before cancellation is
// processed to completion, including its terminal status report and commit.
func (w *Worker) Run(ctx context.Context) {
	slog.Info("worker started")
	for {
		msg, err := w.receiver.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("worker stopped")
				return
			}
			slog.Error("failed to fetch message", "error", err)
			continue
		}

		w.handleMessage(context.WithoutCancel(ctx), msg)
	}
}

// handleMessage always commits: a poison message can never succeed no matter
// how often it is redelivered, and a processed message has already reached a
// terminal outcome.
func (w *Worker) handleMessage(ctx context.Context, msg messaging.Message) {
	run, err := decodeRunMessage(msg.Payload())
	if err != nil {
		slog.Error("dropping poison message", "error", err)
	} else {
		w.process(ctx, run)
	}

	if err := msg.Commit(ctx); err != nil {
		slog.Error("failed to commit offset", "error", err)
	}
}

func (w *Worker) process(ctx context.Context, run *models.RunMessage) {
	logger := slog.With("run_id", run.RunId, "user_id", run.UserId)

	if err := w.reporter.Report(ctx, run.RunId, run.UserId, models.RunProcessing); err != nil {
		logger.Error("failed to report processing status", "error", err)
	}

	if err := w.execute(ctx, run); err != nil {
		logger.Warn("run failed", "stage", stageOf(err), "error", err)
		if reportErr := w.reporter.Report(ctx, run.RunId, run.UserId, models.RunFailed); reportErr != nil {
			logger.Error("failed to report failed status", "error", reportErr)
		}
		return
	}

	if err := w.reporter.Report(ctx, run.RunId, run.UserId, models.RunCompleted); err != nil {
		logger.Error("failed to report completed status", "error", err)
	}
	logger.Info("run completed")
}

func (w *Worker) execute(ctx context.Context, run *models.RunMessage) error {
	resolved, err := w.registry.Resolve(run.Configuration)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(ctx, w.store, run.DatasetS3Path)
	if err != nil {
		return err
	}

	model := resolved.NewModel()
	metrics, err := core.TrainAndEvaluate(model, ds.Features, ds.Target)
	if err != nil {
		return err
	}

	return w.artifacts.Publish(ctx, run.RunId, resolved.Model, model, metrics)
}

func stageOf(err error) string {
	switch {
	case registry.IsConfigurationError(err):
		return "configuration"
	case errors.Is(err, dataset.ErrInvalidLocation),
		errors.Is(err, dataset.ErrDatasetUnavailable),
		errors.Is(err, dataset.ErrMalformedDataset):
		return "dataset"
	case errors.Is(err, core.ErrTraining):
		return "training"
	case errors.Is(err, ErrPublish):
		return "publish"
	}
	return "unknown"
}
