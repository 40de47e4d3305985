package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crm-backend/internal/client"

	"go.uber.org/zap"
)

// LowStockWorker periodically invokes the low-stock corrective mutation
// over the API and appends the results to its sink. Transient API failures
// are logged and skipped; the next tick retries.
type LowStockWorker struct {
	api      *client.Client
	sink     *LogSink
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewLowStockWorker creates a low-stock worker.
func NewLowStockWorker(api *client.Client, sink *LogSink, interval time.Duration, logger *zap.Logger) *LowStockWorker {
	return &LowStockWorker{
		api:      api,
		sink:     sink,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run fires on every tick until the context ends.
func (w *LowStockWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Low-stock worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.update(ctx)
		}
	}
}

func (w *LowStockWorker) update(ctx context.Context) {
	timestamp := w.now().Format(heartbeatTimeFormat)

	result, err := w.api.UpdateLowStockProducts(ctx)
	if err != nil {
		entry := fmt.Sprintf("%s ERROR - Low stock update failed: %v\n%s", timestamp, err, strings.Repeat("-", 50))
		if sinkErr := w.sink.Append(entry); sinkErr != nil {
			w.logger.Error("Failed to log low-stock error", zap.Error(sinkErr))
		}
		w.logger.Warn("Low-stock update failed", zap.Error(err))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Low Stock Update Results:\n", timestamp)
	fmt.Fprintf(&b, "Success: %t\n", result.Success)
	fmt.Fprintf(&b, "Message: %s\n", result.Message)
	fmt.Fprintf(&b, "Products Updated: %d\n", result.Count)

	if len(result.UpdatedProducts) > 0 {
		b.WriteString("Updated Products:\n")
		for _, p := range result.UpdatedProducts {
			fmt.Fprintf(&b, "  - ID: %s, Name: %s, New Stock: %d\n", p.ID, p.Name, p.Stock)
		}
	} else {
		b.WriteString("No products were updated.\n")
	}
	b.WriteString(strings.Repeat("-", 50))

	if err := w.sink.Append(b.String()); err != nil {
		w.logger.Error("Failed to log low-stock results", zap.Error(err))
		return
	}

	w.logger.Info("Low-stock update completed", zap.Int("updated", result.Count))
}
