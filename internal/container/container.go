// Package container wires the application together with samber/do packages.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/urlnorm/internal/analytics"
	analyticsstore "github.com/serroba/urlnorm/internal/analytics/store"
	"github.com/serroba/urlnorm/internal/handlers"
	"github.com/serroba/urlnorm/internal/health"
	"github.com/serroba/urlnorm/internal/messaging"
	"github.com/serroba/urlnorm/internal/middleware"
	"github.com/serroba/urlnorm/internal/normalizer"
	"github.com/serroba/urlnorm/internal/ratelimit"
	"github.com/serroba/urlnorm/internal/registry"
	"github.com/serroba/urlnorm/internal/store"
	"go.uber.org/zap"
)

// Options holds the application configuration, parsed by humacli from flags
// and environment variables.
type Options struct {
	Port          int    `default:"8888"           help:"Port to listen on"                                        short:"p"`
	RedisAddr     string `default:"localhost:6379" help:"Redis server address"                                     short:"r"`
	RegistryStore string `default:"memory"         help:"Registry backend: memory, redis, or postgres"`
	PostgresDSN   string `default:""               help:"PostgreSQL connection string (postgres backend only)"`
	CacheTTL      int    `default:"300"            help:"Registry cache TTL in seconds (postgres backend only)"`
	BatchIDLength int    `default:"12"             help:"Length of generated batch identifiers"                    short:"c"`
	LogFormat     string `default:"console"        help:"Log format: console or json"`
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the pgx connection pool. It is only invoked when
// the postgres-backed registry is selected.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		pool, err := pgxpool.New(context.Background(), options.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		return pool, nil
	})
}

// RepositoryPackage provides the canonical URL registry. The backend is
// selected by RegistryStore: the postgres backend sits behind a Redis read
// cache, redis stores entries directly, and memory is the zero-infra default.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (registry.Repository, error) {
		options := do.MustInvoke[*Options](i)

		switch options.RegistryStore {
		case "postgres":
			if options.PostgresDSN == "" {
				return nil, fmt.Errorf("postgres registry backend requires a DSN")
			}

			pool := do.MustInvoke[*pgxpool.Pool](i)
			redisClient := do.MustInvoke[*redis.Client](i)

			pgStore := store.NewPostgresStore(pool)
			ttl := time.Duration(options.CacheTTL) * time.Second

			return store.NewRedisCacheRepository(pgStore, redisClient, ttl), nil
		case "redis":
			return store.NewRedisStore(do.MustInvoke[*redis.Client](i)), nil
		case "memory":
			return store.NewMemoryStore(), nil
		default:
			return nil, fmt.Errorf("unknown registry backend %q", options.RegistryStore)
		}
	})
}

// RateLimitPackage provides the policy rate limiter and scope resolver.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*ratelimit.PolicyLimiter, error) {
		return ratelimit.NewPolicyLimiter(store.NewRateLimitMemoryStore(), ratelimit.DefaultPolicy()), nil
	})

	do.Provide(injector, func(_ *do.Injector) (ratelimit.ScopeResolver, error) {
		return ratelimit.NewOperationScopeResolver(), nil
	})
}

// PublisherGroupPackage provides the watermill publisher over Redis streams
// and the typed publish functions used by the handlers.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		redisClient := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: redisClient,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, fmt.Errorf("create redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.URLNormalizedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.URLNormalizedEvent](group.Publisher(), analytics.TopicURLNormalized), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.BatchDedupedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.BatchDedupedEvent](group.Publisher(), analytics.TopicBatchDeduped), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group over Redis
// streams. Used by the consumer binary.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		redisClient := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        redisClient,
			ConsumerGroup: "analytics",
		}, watermill.NopLogger{})
		if err != nil {
			return nil, fmt.Errorf("create redis stream subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(logger)
		group.Add(analytics.NewConsumer(subscriber, analyticsstore.NewNoop(logger), logger))

		return group, nil
	})
}

// HTTPPackage provides the router and the huma API with all routes and
// middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)

		api := humachi.New(router, huma.DefaultConfig("URL Normalizer", "1.0.0"))

		limiter := do.MustInvoke[*ratelimit.PolicyLimiter](i)
		resolver := do.MustInvoke[ratelimit.ScopeResolver](i)

		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.PolicyRateLimiter(api, limiter, resolver, logger))

		newBatchID, err := nanoid.Standard(options.BatchIDLength)
		if err != nil {
			return nil, fmt.Errorf("create batch id generator: %w", err)
		}

		handler := handlers.NewNormalizeHandler(
			normalizer.New(),
			do.MustInvoke[registry.Repository](i),
			newBatchID,
			do.MustInvoke[messaging.Publish[analytics.URLNormalizedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.BatchDedupedEvent]](i),
			logger,
		)

		handlers.RegisterRoutes(api, handler)

		redisClient := do.MustInvoke[*redis.Client](i)
		checks := []health.Check{
			{Name: "redis", Checker: health.NewRedisChecker(redisClient)},
		}

		if options.RegistryStore == "postgres" {
			pool := do.MustInvoke[*pgxpool.Pool](i)
			checks = append(checks, health.Check{Name: "postgres", Checker: health.NewPostgresChecker(pool)})
		}

		health.RegisterRoutes(api, health.NewHandler(checks...))

		return api, nil
	})
}
