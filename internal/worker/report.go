package worker

import (
	"context"
	"fmt"
	"time"

	"crm-backend/internal/client"
	"crm-backend/internal/service"

	"go.uber.org/zap"
)

// reportTimeFormat renders YYYY-MM-DD HH:MM:SS.
const reportTimeFormat = "2006-01-02 15:04:05"

// ReportWorker periodically summarizes the CRM (customers, orders, revenue)
// and appends a report line to its sink. It prefers the API endpoint and
// degrades to direct store aggregation when the API is unreachable.
type ReportWorker struct {
	api      *client.Client
	reports  service.ReportService
	sink     *LogSink
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportWorker creates a report worker. reports is the direct-store
// fallback used when the API call fails.
func NewReportWorker(api *client.Client, reports service.ReportService, sink *LogSink, interval time.Duration, logger *zap.Logger) *ReportWorker {
	return &ReportWorker{
		api:      api,
		reports:  reports,
		sink:     sink,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run fires on every tick until the context ends.
func (w *ReportWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Report worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.generate(ctx)
		}
	}
}

func (w *ReportWorker) generate(ctx context.Context) {
	timestamp := w.now().Format(reportTimeFormat)

	summary, err := w.fetch(ctx)
	if err != nil {
		entry := fmt.Sprintf("%s - ERROR generating report: %v", timestamp, err)
		if sinkErr := w.sink.Append(entry); sinkErr != nil {
			w.logger.Error("Failed to log report error", zap.Error(sinkErr))
		}
		w.logger.Warn("Report generation failed", zap.Error(err))
		return
	}

	entry := fmt.Sprintf("%s - Report: %d customers, %d orders, $%s revenue.",
		timestamp,
		summary.TotalCustomers,
		summary.TotalOrders,
		summary.TotalRevenue.StringFixed(2),
	)

	if err := w.sink.Append(entry); err != nil {
		w.logger.Error("Failed to log report", zap.Error(err))
		return
	}

	w.logger.Info("Report generated",
		zap.Int("customers", summary.TotalCustomers),
		zap.Int("orders", summary.TotalOrders),
		zap.String("revenue", summary.TotalRevenue.StringFixed(2)),
	)
}

// fetch tries the API first, then falls back to direct store aggregation.
func (w *ReportWorker) fetch(ctx context.Context) (*service.ReportSummary, error) {
	apiSummary, err := w.api.ReportSummary(ctx)
	if err == nil {
		return &service.ReportSummary{
			TotalCustomers: apiSummary.TotalCustomers,
			TotalOrders:    apiSummary.TotalOrders,
			TotalRevenue:   apiSummary.TotalRevenue,
		}, nil
	}

	w.logger.Warn("Report API call failed, falling back to store aggregation", zap.Error(err))

	if w.reports == nil {
		return nil, err
	}

	summary, dbErr := w.reports.Summary(ctx)
	if dbErr != nil {
		return nil, fmt.Errorf("api: %v; store fallback: %w", err, dbErr)
	}

	return summary, nil
}
