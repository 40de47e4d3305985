package worker

import (
	"context"
	"fmt"
	"time"

	"crm-backend/internal/client"

	"go.uber.org/zap"
)

// heartbeatTimeFormat renders DD/MM/YYYY-HH:MM:SS.
const heartbeatTimeFormat = "02/01/2006-15:04:05"

// HeartbeatWorker periodically appends a liveness line to its sink and
// checks that the API endpoint answers. Failures are recorded, never fatal.
type HeartbeatWorker struct {
	api      *client.Client
	sink     *LogSink
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewHeartbeatWorker creates a heartbeat worker.
func NewHeartbeatWorker(api *client.Client, sink *LogSink, interval time.Duration, logger *zap.Logger) *HeartbeatWorker {
	return &HeartbeatWorker{
		api:      api,
		sink:     sink,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run beats once immediately, then on every tick until the context ends.
func (w *HeartbeatWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Heartbeat worker started", zap.Duration("interval", w.interval))

	w.beat(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.beat(ctx)
		}
	}
}

func (w *HeartbeatWorker) beat(ctx context.Context) {
	message := fmt.Sprintf("%s CRM is alive", w.now().Format(heartbeatTimeFormat))

	if err := w.api.Ping(ctx); err != nil {
		message += fmt.Sprintf(" - API check failed: %v", err)
	} else {
		message += " - API endpoint responsive"
	}

	if err := w.sink.Append(message); err != nil {
		w.logger.Error("Failed to log heartbeat", zap.Error(err))
		return
	}

	w.logger.Debug("Heartbeat logged")
}
