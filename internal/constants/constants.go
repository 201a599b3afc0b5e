package constants

// Order status names seeded into the statuses table.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Queue constants.
const (
	QueueDefault           = "default"
	TaskPromoUsageIncrease = "promo:usage_increment"
)

// Cache constants.
const (
	RedisPrefixDefault = "orders"
)
