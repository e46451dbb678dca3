package bootstrap

import (
	"context"

	"usecase-catalog-be/internal/config"
	"usecase-catalog-be/internal/controller"
	"usecase-catalog-be/internal/pkg/logger"
	"usecase-catalog-be/internal/pkg/serverutils"
	"usecase-catalog-be/internal/repository/cache"
	"usecase-catalog-be/internal/repository/unitofwork"
	"usecase-catalog-be/internal/service"
	pktNats "usecase-catalog-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	HealthController  controller.IHealthController
	UseCaseController controller.IUseCaseController

	// Services
	UseCaseService service.IUseCaseService
	ImportService  service.IImportService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	closers []func()
}

// NewContainer builds every dependency from cfg. Optional infrastructure
// (Redis, NATS) that cannot be reached is logged and replaced by its
// in-process fallback.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.ILogger) *Container {
	c := &Container{Logger: log}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// 2. Filter cache
	var filterCache cache.Cache = cache.NewMemoryCache(cfg.Cache.FiltersTTL)
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "catalog:")
		if err != nil {
			log.Warn("BOOTSTRAP", "Redis unavailable, using in-memory filter cache", map[string]interface{}{"error": err.Error()})
		} else {
			filterCache = redisCache
			c.closers = append(c.closers, func() { _ = redisCache.Close() })
		}
	}

	// 3. Event Bus
	// Publishing waits for the consumer's ack, so the filter cache is already
	// invalidated when a create returns.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64, BlockPublishUntilSubscriberAck: true},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var (
		forwarder service.EventPublisher
		remote    service.EventSubscriber
	)
	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.Events.NatsURL)
		if err != nil {
			log.Warn("BOOTSTRAP", "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.Events.NatsURL)
		if err != nil {
			log.Warn("BOOTSTRAP", "Failed to connect to NATS subscriber", map[string]interface{}{"error": err.Error()})
		} else {
			remote = natsSub
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Events.CreatedTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.CreatedTopic, filterCache, forwarder, remote, log)

	c.UseCaseService = service.NewUseCaseService(uowFactory, publisherService, filterCache, cfg.Cache.FiltersTTL, log)
	c.ImportService = service.NewImportService(c.UseCaseService, log, cfg.Import.MaxDiagnostics)

	// 5. Controllers
	c.HealthController = controller.NewHealthController(cfg.App.Environment)
	c.UseCaseController = controller.NewUseCaseController(
		c.UseCaseService,
		serverutils.APIKeyMiddleware(cfg.Security.APISecretKey, log),
	)

	return c
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
