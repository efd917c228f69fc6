package container

import (
	"context"
	"fmt"

	"videofeed/ingest/internal/catalog"
	"videofeed/ingest/internal/client"
	"videofeed/ingest/internal/config"
	"videofeed/ingest/internal/labels"
	"videofeed/ingest/internal/proxy"
	"videofeed/ingest/internal/queue"
	"videofeed/ingest/internal/repository"
	"videofeed/ingest/internal/service"
	"videofeed/ingest/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Fetcher      client.Fetcher
	Builder      *catalog.Builder
	Repository   repository.VideoRepository
	Queue        queue.Queue
	StateManager state.StateManager

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	proxySupplier := proxy.NewProxySupplier(ctx, cfg.Feed.Proxies, cfg.Feed.RootURL)

	container.Fetcher = client.NewFetcher(cfg.Feed, proxySupplier)
	container.Builder = catalog.NewBuilder(container.Fetcher, labels.FromConfig(cfg.Labels))

	var sinks []service.Sink

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		container.db = db

		videoRepo := repository.NewVideoRepository(db)
		if err := videoRepo.EnsureSchema(ctx); err != nil {
			container.Close()
			return nil, err
		}
		container.Repository = videoRepo
		sinks = append(sinks, service.Sink{Name: "postgres", Store: videoRepo})

		log.Info("✅ Connected to Postgres successfully")
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		container.redis = rdb

		if err := rdb.Ping(ctx).Err(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		log.Info("✅ Connected to Redis successfully")

		redisQueue, err := queue.NewRedisQueue(ctx, rdb, cfg.Redis)
		if err != nil {
			container.Close()
			return nil, err
		}
		container.Queue = redisQueue
		container.StateManager = state.NewRedisStateManager(rdb)
		sinks = append(sinks, service.Sink{Name: "redis", Store: redisQueue})
	}

	if len(sinks) == 0 {
		log.Warn("⚠️ No record store enabled, ingested videos will be discarded")
	}

	container.Service = service.NewService(container.Builder, container.StateManager, cfg.Feed, sinks...)

	return container, nil
}

// Run performs one ingestion
func (c *Container) Run(ctx context.Context) error {
	_, err := c.Service.Ingest(ctx)
	return err
}

// Close performs cleanup when shutting down
func (c *Container) Close() {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("⚠️ Failed to close Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
}
