package provider

import (
	"time"

	"github.com/orders-next/internal/cache"
	"github.com/orders-next/internal/catalog"
	"github.com/orders-next/internal/config"
	"github.com/orders-next/internal/logger"
	"github.com/orders-next/internal/models"
	"github.com/orders-next/internal/queue"
	"github.com/orders-next/internal/repository"
	"github.com/orders-next/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config        *config.Config
	QueueClient   *queue.Client
	CatalogClient catalog.Client

	// Repositories
	OrderRepo     repository.OrderRepository
	PromoCodeRepo repository.PromoCodeRepository
	StatusRepo    repository.StatusRepository

	// Services
	OrderService *service.OrderService
	PromoService *service.PromoService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	catalogClient, err := catalog.NewHTTPClient(catalog.Config{
		Endpoints: cfg.Catalog.Endpoints,
		Timeout:   time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Errorw("provider_init_catalog_client_failed", "error", err)
		panic(err)
	}

	c := &Container{
		Config:        cfg,
		QueueClient:   queueClient,
		CatalogClient: catalogClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PromoCodeRepo = repository.NewPromoCodeRepository(db)
	c.StatusRepo = repository.NewStatusRepository(db)
}

func (c *Container) initServices() {
	c.PromoService = service.NewPromoService(c.PromoCodeRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.StatusRepo, c.CatalogClient, c.PromoService, c.QueueClient)
}
