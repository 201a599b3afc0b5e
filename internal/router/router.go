package router

import (
	"fmt"
	"strings"

	"github.com/orders-next/internal/cache"
	"github.com/orders-next/internal/config"
	"github.com/orders-next/internal/constants"
	"github.com/orders-next/internal/http/handlers"
	"github.com/orders-next/internal/logger"
	"github.com/orders-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := handlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	orderCreateRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order_create", redisPrefix),
		WindowSeconds: cfg.Security.OrderRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OrderRateLimit.MaxRequests,
		Message:       "too many orders",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		orders := apiV1.Group("/orders")
		{
			orders.POST("", RateLimitMiddleware(redisClient, orderCreateRule, KeyByIP), handler.CreateOrder)
			orders.POST("/preview", handler.PreviewOrder)
			orders.GET("", handler.ListOrders)
			orders.GET("/:id", handler.GetOrder)
			orders.PUT("/:id", handler.UpdateOrder)
			orders.DELETE("/:id", handler.DeleteOrder)
			orders.GET("/customer/:customer_id", handler.ListCustomerOrders)
			orders.GET("/no/:order_no", handler.GetOrderByNo)
		}

		promoCodes := apiV1.Group("/promo-codes")
		{
			promoCodes.POST("", handler.CreatePromoCode)
			promoCodes.GET("", handler.ListPromoCodes)
			promoCodes.GET("/validate/:code", handler.ValidatePromoCode)
			promoCodes.GET("/:id", handler.GetPromoCode)
			promoCodes.PUT("/:id", handler.UpdatePromoCode)
			promoCodes.DELETE("/:id", handler.DeletePromoCode)
		}

		apiV1.GET("/statuses", handler.ListStatuses)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"service": "orders", "status": "ok"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
