package handlers

import (
	"time"

	"github.com/orders-next/internal/cache"
	"github.com/orders-next/internal/http/response"
	"github.com/orders-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusCacheKey = "statuses"
	statusCacheTTL = 5 * time.Minute
)

// ListStatuses returns the known order statuses. The set is seeded at
// startup and effectively static, so it is cached.
func (h *Handler) ListStatuses(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []models.Status
	if hit, err := cache.GetJSON(ctx, statusCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	statuses, err := h.OrderService.ListStatuses()
	if err != nil {
		respondError(c, response.CodeInternal, "status list failed", err)
		return
	}
	if err := cache.SetJSON(ctx, statusCacheKey, statuses, statusCacheTTL); err != nil {
		requestLog(c).Warnw("status_cache_set_failed", "error", err)
	}
	response.Success(c, statuses)
}
