package worker

import (
	"context"
	"encoding/json"

	"github.com/orders-next/internal/logger"
	"github.com/orders-next/internal/provider"
	"github.com/orders-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles async tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPromoUsageIncrement, c.handlePromoUsageIncrement)
}

func (c *Consumer) handlePromoUsageIncrement(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_promo_usage_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PromoUsageIncrementPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_promo_usage_unmarshal_failed", "error", err)
		return err
	}
	if payload.PromoCodeID == 0 {
		logger.Debugw("worker_promo_usage_skip_invalid_payload", "promo_code_id", payload.PromoCodeID)
		return nil
	}
	if c.PromoService == nil {
		logger.Warnw("worker_promo_usage_skip_promo_service_nil", "promo_code_id", payload.PromoCodeID)
		return nil
	}
	if err := c.PromoService.IncrementUsage(payload.PromoCodeID); err != nil {
		logger.Warnw("worker_promo_usage_increment_failed",
			"promo_code_id", payload.PromoCodeID,
			"order_no", payload.OrderNo,
			"error", err,
		)
		return err
	}
	logger.Debugw("worker_promo_usage_incremented",
		"promo_code_id", payload.PromoCodeID,
		"order_no", payload.OrderNo,
	)
	return nil
}
