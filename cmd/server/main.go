package main

import (
	"fmt"
	"log"

	"billscan/internal/config"
	"billscan/internal/dedupe"
	"billscan/internal/extract"
	"billscan/internal/fieldmap"
	"billscan/internal/handler"
	"billscan/internal/port"
	"billscan/internal/repository/postgres"
	"billscan/internal/router"
	"billscan/internal/service"
	s3storage "billscan/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	billRepo := postgres.NewBillRepo(db)

	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Extraction engine: built once, shared read-only across requests.
	orchestrator := extract.NewDefaultOrchestrator(extract.DefaultPolicy())
	deduper := dedupe.NewEngine(fieldmap.Default())

	scanSvc := service.NewScanService(orchestrator, deduper, billRepo, storage, cfg)

	extractH := handler.NewExtractHandler(scanSvc)
	billH := handler.NewBillHandler(scanSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, extractH, billH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
