package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/auth"
	"github.com/emmyxjay/contentFlow-New/internal/cache"
	"github.com/emmyxjay/contentFlow-New/internal/config"
	"github.com/emmyxjay/contentFlow-New/internal/events"
	"github.com/emmyxjay/contentFlow-New/internal/generator"
	"github.com/emmyxjay/contentFlow-New/internal/handlers"
	"github.com/emmyxjay/contentFlow-New/internal/metrics"
	"github.com/emmyxjay/contentFlow-New/internal/middleware"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
	"github.com/emmyxjay/contentFlow-New/internal/routes"
	"github.com/emmyxjay/contentFlow-New/internal/scheduler"
	"github.com/emmyxjay/contentFlow-New/internal/services"
	"github.com/emmyxjay/contentFlow-New/internal/storage"
	"github.com/emmyxjay/contentFlow-New/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Development(), cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting contentflow", zap.String("env", cfg.App.Env), zap.Int("port", cfg.App.Port))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("store init failed", zap.Error(err))
	}

	// completion provider
	var gen generator.ContentGenerator
	if cfg.OpenAI.Provider == "mock" {
		logger.Warn("using mock completion provider")
		gen = &generator.MockGenerator{Delay: 500 * time.Millisecond}
	} else {
		gen = generator.NewOpenAIGenerator(generator.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.OpenAITimeout,
		}, logger)
	}

	// events
	var pub events.Publisher = events.NewLogPublisher(logger)
	if len(cfg.Kafka.Brokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		logger.Info("kafka events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// object storage and presigned URL cache; left as nil interfaces when
	// not configured
	var objects services.ObjectStore
	if cfg.StorageEnabled() {
		s3, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:     cfg.AWS.Region,
			Bucket:     cfg.AWS.Bucket,
			Endpoint:   cfg.AWS.Endpoint,
			PublicRead: cfg.S3.PublicRead,
		})
		if err != nil {
			logger.Fatal("s3 init failed", zap.Error(err))
		}
		objects = s3
	} else {
		logger.Warn("aws.bucket not set, media uploads disabled")
	}
	var urlCache services.Cache
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = cache.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Fatal("redis init failed", zap.Error(err))
		}
		urlCache = cache.NewRedisCache(rdb, "contentflow:")
	}

	m := metrics.New()
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL)

	genSvc := services.NewGenerationService(gen, m, logger)
	contentSvc := services.NewContentService(store.Content, pub, logger)
	h := handlers.NewHandler(handlers.Deps{
		Generation: genSvc,
		Auth:       services.NewAuthService(store.Users, store.Workspaces, tokens, cfg.JWT.HashCost, logger),
		Ideas:      services.NewIdeaService(store.Ideas, genSvc, pub, logger),
		Content:    contentSvc,
		Media:      services.NewMediaService(store.Media, objects, urlCache, cfg.PresignTTL, cfg.SignedURLCacheTTL, pub, logger),
		Analytics:  services.NewAnalyticsService(store),
	}, logger)

	app := fiber.New(fiber.Config{
		AppName:      "contentflow",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    cfg.App.BodyLimitMB * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.App.CORSOrigins}))
	app.Use(middleware.RequestLogger(logger))

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.Burst, logger)
	go limiter.Run(ctx)

	routes.Register(app, h, routes.Options{Tokens: tokens, Metrics: m, AuthLimiter: limiter}, logger)

	if cfg.Scheduler.Enabled {
		go scheduler.NewPublisher(contentSvc, cfg.SchedulerInterval, m, logger).Run(ctx)
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Info("server listening", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("fiber shutdown error", zap.Error(err))
	}
	if err := pub.Close(); err != nil {
		logger.Error("event publisher close error", zap.Error(err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close error", zap.Error(err))
		}
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("store close error", zap.Error(err))
	}
	logger.Info("graceful shutdown complete")
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Store, error) {
	var (
		store *repository.Store
		err   error
	)
	switch cfg.Store.Driver {
	case "mongo":
		store, err = repository.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger)
		if err != nil {
			return nil, err
		}
	default:
		logger.Warn("using in-memory store, data is lost on restart")
		store = repository.NewMemoryStore()
	}
	if cfg.Store.Seed {
		if err := repository.Seed(ctx, store, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		logger.Info("demo workspace seeded", zap.String("email", repository.DemoEmail))
	}
	return store, nil
}
