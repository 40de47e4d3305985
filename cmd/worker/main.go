package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"crm-backend/internal/client"
	"crm-backend/internal/config"
	"crm-backend/internal/database"
	"crm-backend/internal/logger"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"
	"crm-backend/internal/worker"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.NewFor("worker", cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting CRM background workers",
		zap.String("env", cfg.Server.Env),
		zap.String("api_base_url", cfg.Worker.APIBaseURL),
	)

	// Database access backs the report worker's direct-aggregation fallback
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reportService := service.NewReportService(customerRepo, orderRepo)

	apiClient := client.New(cfg.Worker.APIBaseURL)

	heartbeat := worker.NewHeartbeatWorker(
		apiClient,
		worker.NewLogSink(cfg.Worker.HeartbeatLog),
		cfg.Worker.HeartbeatInterval,
		log,
	)
	lowStock := worker.NewLowStockWorker(
		apiClient,
		worker.NewLogSink(cfg.Worker.LowStockLog),
		cfg.Worker.LowStockInterval,
		log,
	)
	report := worker.NewReportWorker(
		apiClient,
		reportService,
		worker.NewLogSink(cfg.Worker.ReportLog),
		cfg.Worker.ReportInterval,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, run := range []func(context.Context){heartbeat.Run, lowStock.Run, report.Run} {
		wg.Add(1)
		go func(run func(context.Context)) {
			defer wg.Done()
			run(ctx)
		}(run)
	}

	<-ctx.Done()
	log.Info("Shutting down workers")
	wg.Wait()
	log.Info("Workers exited")
}
