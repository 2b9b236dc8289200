package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"train-service/internal/api"
	"train-service/internal/config"
	"train-service/internal/messaging"
	"train-service/internal/registry"
	"train-service/internal/reporting"
	"train-service/internal/storage"
	"train-service/internal/worker"
)

func main() {
	log.Println("Starting train worker...")

	config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	store, err := storage.NewS3ObjectStore(storage.S3ClientConfig{
		Endpoint:        cfg.S3EndpointURL,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		log.Fatalf("Failed to create S3 object store: %v", err)
	}

	if err := store.CreateBucket(context.Background(), cfg.ArtifactBucket); err != nil {
		log.Fatalf("Failed to ensure artifact bucket: %v", err)
	}

	receiver := messaging.NewKafkaReceiver(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupId)
	defer receiver.Close()

	reporter := reporting.NewCoreClient(cfg.CoreServiceURL, cfg.JWTSecret, time.Duration(cfg.JWTExpiresMinutes)*time.Minute)
	modelRegistry := registry.NewRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		worker.New(receiver, modelRegistry, store, reporter, cfg.ArtifactBucket).Run(ctx)
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	api.NewCatalogService(modelRegistry).AddRoutes(r)

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutdown signal received, finishing in-flight run...")
		<-consumerDone

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("catalog API listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v", cfg.APIPort, err)
	}

	log.Println("Worker stopped.")
}
