package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/suessland/suessland-platform/internal/catalog"
	"github.com/suessland/suessland-platform/internal/pricing"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeBulkReprice recomputes channel prices for all active products.
	TaskTypeBulkReprice = "pricing:bulk_reprice"
)

// BulkRepricePayload carries one repricing run.
type BulkRepricePayload struct {
	RunID  string         `json:"run_id"`
	Params pricing.Params `json:"params"`
}

// NewBulkRepriceTask constructs an Asynq task for a repricing run.
func NewBulkRepriceTask(payload BulkRepricePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeBulkReprice, data), nil
}

// NewBulkRepriceHandler returns the worker-side handler. The counts
// cache is invalidated after a successful run; its TTL would otherwise
// serve pre-reprice data to the sidebar.
func NewBulkRepriceHandler(svc *pricing.Service, counts *catalog.CountsCache, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload BulkRepricePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		updated, err := svc.BulkReprice(ctx, payload.RunID, payload.Params)
		if err != nil {
			logger.Error("bulk reprice run failed",
				slog.String("run_id", payload.RunID), slog.Any("error", err))
			return err
		}
		counts.Invalidate(ctx)
		logger.Info("bulk reprice run complete",
			slog.String("run_id", payload.RunID), slog.Int("updated", updated))
		return nil
	}
}
