package bootstrap

import (
	"context"
	"fmt"
	"log"

	"site-gallery-be/internal/catalog"
	"site-gallery-be/internal/config"
	"site-gallery-be/internal/controller"
	"site-gallery-be/internal/pkg/logger"
	"site-gallery-be/internal/repository/cache"
	"site-gallery-be/internal/repository/contract"
	"site-gallery-be/internal/repository/memory"
	"site-gallery-be/internal/repository/unitofwork"
	"site-gallery-be/internal/service"
	"site-gallery-be/internal/websocket"
	galleryEvents "site-gallery-be/pkg/gallery/events"
	"site-gallery-be/pkg/objectstore"

	pktNats "site-gallery-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	SiteController    controller.ISiteController
	GalleryController controller.IGalleryController
	FormController    controller.IFormController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	FormService     service.IFormService
	WebSocketHub    *websocket.Hub

	// LocalStore is set when objects live on disk and must be served by us
	LocalStore *objectstore.LocalStore

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every dependency. db may be nil, in which case image
// metadata lives in memory for the lifetime of the process.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}
	cat := catalog.Default()

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		log.Printf("[WARN] No database configured, image metadata is kept in memory")
		uowFactory = memory.NewRepositoryFactory()
	}

	store, local, err := NewObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.LocalStore = local

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	// NATS
	var sink galleryEvents.Sink
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			sink = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}
	eventPublisher := galleryEvents.NewNatsPublisher(sink, sysLogger)

	// Redis
	rdb := newRedisClient(ctx, cfg.App.RedisURL)
	var states contract.GalleryStateRepository
	if rdb != nil {
		states = cache.NewGalleryStateCache(rdb, cfg.Gallery.StateTTL)
		c.closers = append(c.closers, func() { rdb.Close() })
	} else {
		states = memory.NewGalleryStateRepository(cfg.Gallery.StateTTL)
	}

	// WebSocket Hub
	hubCtx, cancelHub := context.WithCancel(ctx)
	wsHub := websocket.NewHub(rdb, logger.NewIsolatedLogger("logs/websocket.log"))
	go wsHub.Run(hubCtx)
	c.closers = append(c.closers, cancelHub)
	c.WebSocketHub = wsHub

	if cfg.Gallery.OwnerId == "" {
		log.Printf("[WARN] GALLERY_ADMIN_USER_ID is not set, uploads are disabled")
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Gallery.EventTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Gallery.EventTopic, wsHub, eventPublisher, sysLogger)

	sessionService := service.NewSessionService(cfg.Gallery.AdminUserId)
	siteService := service.NewSiteService(cat)
	galleryService := service.NewGalleryService(cat, uowFactory, store, states, publisherService, sysLogger, service.GalleryOptions{
		OwnerId:        cfg.Gallery.OwnerId,
		UploadStrategy: cfg.Gallery.UploadStrategy,
		MaxUploadBytes: cfg.Gallery.MaxUploadBytes,
	})
	c.FormService = service.NewFormService(
		cat,
		memory.NewFormSubmissionRepository(),
		service.NewLogSubmitter(logger.NewIsolatedLogger("logs/forms.log")),
		eventPublisher,
		sysLogger,
		service.FormOptions{
			SubmitDelay: cfg.Forms.SubmitDelay,
			ResetAfter:  cfg.Forms.ResetAfter,
		},
	)

	// 5. Controllers
	c.SessionController = controller.NewSessionController(sessionService, cfg.Auth.JwtSecret)
	c.SiteController = controller.NewSiteController(siteService)
	c.GalleryController = controller.NewGalleryController(galleryService, sessionService, siteService, wsHub, sysLogger, cfg.Auth.JwtSecret)
	c.FormController = controller.NewFormController(c.FormService)
	c.HealthController = controller.NewHealthController(healthChecks(db, rdb))

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}

// NewObjectStore picks the bucket driver. The second return is non-nil only for
// the local driver, whose files the HTTP server has to serve.
func NewObjectStore(ctx context.Context, cfg *config.Config) (objectstore.Store, *objectstore.LocalStore, error) {
	switch cfg.Storage.Driver {
	case "s3":
		store, err := objectstore.NewS3Store(ctx, objectstore.S3Config{
			Bucket:        cfg.Storage.Bucket,
			Region:        cfg.Storage.S3Region,
			Endpoint:      cfg.Storage.S3Endpoint,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case "local", "":
		baseURL := cfg.Storage.PublicBaseURL
		if baseURL == "" {
			baseURL = cfg.App.BaseURL
		}
		store, err := objectstore.NewLocalStore(cfg.Storage.LocalRoot, cfg.Storage.Bucket, baseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
}

// newRedisClient returns nil when Redis is not configured or unreachable.
func newRedisClient(ctx context.Context, url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-process state", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func healthChecks(db *gorm.DB, rdb *redis.Client) map[string]controller.HealthCheck {
	checks := make(map[string]controller.HealthCheck)
	if db != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}
