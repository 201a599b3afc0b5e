package queue

import (
	"encoding/json"

	"github.com/orders-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPromoUsageIncrement bumps a promo code usage counter.
	TaskPromoUsageIncrement = constants.TaskPromoUsageIncrease
)

// PromoUsageIncrementPayload is the promo usage task payload.
type PromoUsageIncrementPayload struct {
	PromoCodeID uint   `json:"promo_code_id"`
	OrderNo     string `json:"order_no"`
}

// NewPromoUsageIncrementTask creates a promo usage increment task.
func NewPromoUsageIncrementTask(payload PromoUsageIncrementPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPromoUsageIncrement, body), nil
}
