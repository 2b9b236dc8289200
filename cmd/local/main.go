// Command local runs the whole pipeline in-process against a local object
// store, an in-memory queue, and a stub core service. Useful for trying out
// configurations without Kafka, MinIO, or the core service.
package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"train-service/internal/messaging"
	"train-service/internal/registry"
	"train-service/internal/reporting"
	"train-service/internal/storage"
	"train-service/internal/worker"
	"train-service/pkg/models"
)

const sampleCSV = `x1,x2,target
1,2,5
2,1,4
3,4,11
4,3,10
5,6,17
6,5,16
7,8,23
8,7,22
9,10,29
10,9,28
`

func main() {
	dir, err := os.MkdirTemp("", "train-local-*")
	if err != nil {
		log.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := storage.NewLocalObjectStore(dir)
	if err != nil {
		log.Fatalf("failed to create local object store: %v", err)
	}

	ctx := context.Background()
	for _, bucket := range []string{"datasets", "artifacts"} {
		if err := store.CreateBucket(ctx, bucket); err != nil {
			log.Fatalf("failed to create bucket: %v", err)
		}
	}
	if err := store.PutObject(ctx, "datasets", "sample.csv", strings.NewReader(sampleCSV)); err != nil {
		log.Fatalf("failed to seed dataset: %v", err)
	}

	r := chi.NewRouter()
	r.Post("/runs/{run_id}/status", func(w http.ResponseWriter, req *http.Request) {
		slog.Info("core service stub got status update", "run_id", chi.URLParam(req, "run_id"))
		w.WriteHeader(http.StatusOK)
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("failed to start core service stub: %v", err)
	}
	coreStub := &http.Server{Handler: r}
	go coreStub.Serve(listener) //nolint:errcheck
	defer coreStub.Close()
	coreStubURL := "http://" + listener.Addr().String()

	queue := messaging.NewInMemoryQueue()
	if err := queue.PublishRun(ctx, models.RunMessage{
		UserId:        1,
		DatasetS3Path: "s3://datasets/sample.csv",
		RunId:         1,
		Configuration: map[string]any{
			"model":           "LinearRegression",
			"hyperparameters": map[string]any{"fit_intercept": true},
		},
	}); err != nil {
		log.Fatalf("failed to publish sample run: %v", err)
	}

	reporter := reporting.NewCoreClient(coreStubURL, "secret", time.Minute)

	runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	go func() {
		time.Sleep(2 * time.Second)
		cancel()
	}()

	worker.New(queue, registry.NewRegistry(), store, reporter, "artifacts").Run(runCtx)

	body, err := store.GetObject(ctx, "artifacts", worker.MetricsKey(1))
	if err != nil {
		log.Fatalf("failed to read back metrics: %v", err)
	}
	defer body.Close()

	metrics, err := io.ReadAll(body)
	if err != nil {
		log.Fatalf("failed to read metrics body: %v", err)
	}
	log.Printf("run 1 metrics: %s", metrics)
}
