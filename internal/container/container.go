// Package container wires the service together with samber/do. Each
// concern registers through its own Package function so the server and
// consumer binaries can pick the subset they need.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/caarlos0/env/v11"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"cutme/internal/analytics"
	analyticsstore "cutme/internal/analytics/store"
	"cutme/internal/auth"
	"cutme/internal/handlers"
	"cutme/internal/health"
	"cutme/internal/messaging"
	"cutme/internal/middleware"
	"cutme/internal/ratelimit"
	"cutme/internal/shortlink"
	"cutme/internal/store"
)

// Options is the shared configuration surface. The server binary fills it
// through humacli flags; the consumer reads the same fields from the
// environment via OptionsFromEnv.
type Options struct {
	Port         int    `default:"8888"                  doc:"Port to listen on"                                env:"PORT"           help:"Port to listen on"                                short:"p"`
	Domain       string `default:"http://localhost:8888" doc:"Public prefix for short URLs"                     env:"DOMAIN"         help:"Public prefix short URLs are composed with"`
	CodeLength   int    `default:"10"                    doc:"Length of generated short codes"                  env:"CODE_LENGTH"    help:"Length of generated short codes"                  short:"c"`
	StoreBackend string `default:"restdb"                doc:"Link store backend (restdb, postgres or memory)"  env:"STORE_BACKEND"  help:"Link store backend: restdb, postgres or memory"`
	StoreURL     string `doc:"Remote document collection endpoint"                                              env:"STORE_URL"      help:"Remote document collection endpoint"`
	StoreAPIKey  string `doc:"Remote document store api key"                                                    env:"STORE_API_KEY"  help:"Remote document store api key"`
	PostgresDSN  string `doc:"Postgres connection string"                                                       env:"POSTGRES_DSN"   help:"Postgres connection string"`
	RedisAddr    string `default:"localhost:6379"        doc:"Redis server address"                             env:"REDIS_ADDR"     help:"Redis server address"                             short:"r"`
	CacheTTL     int    `default:"300"                   doc:"Link cache TTL in seconds; 0 disables the cache"  env:"CACHE_TTL"      help:"Link cache TTL in seconds, 0 disables the cache"`
	LogFormat    string `default:"console"               doc:"Log output format (console or json)"              env:"LOG_FORMAT"     help:"Log output format: console or json"`
	AdminUser    string `doc:"Admin username; enables the session gate when set"                                env:"ADMIN_USER"     help:"Admin username, enables the session gate when set"`
	AdminPass    string `doc:"Admin password"                                                                   env:"ADMIN_PASS"     help:"Admin password"`
}

// OptionsFromEnv parses Options from the environment for binaries that do
// not run under humacli. Defaults mirror the flag defaults above.
func OptionsFromEnv() (*Options, error) {
	opts := &Options{
		Port:         8888,
		Domain:       "http://localhost:8888",
		CodeLength:   10,
		StoreBackend: "restdb",
		RedisAddr:    "localhost:6379",
		CacheTTL:     300,
		LogFormat:    "console",
	}
	if err := env.Parse(opts); err != nil {
		return nil, err
	}

	return opts, nil
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

// RedisPackage provides the shared redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: options.RedisAddr}), nil
	})
}

// StorePackage provides the shortlink.Store selected by Options, wrapped
// with the redis cache when a TTL is configured.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortlink.Store, error) {
		options := do.MustInvoke[*Options](i)

		base, err := baseStore(i, options)
		if err != nil {
			return nil, err
		}

		if options.CacheTTL <= 0 {
			return base, nil
		}

		client := do.MustInvoke[*redis.Client](i)
		ttl := time.Duration(options.CacheTTL) * time.Second

		return store.NewRedisCache(base, client, ttl), nil
	})
}

func baseStore(i *do.Injector, options *Options) (shortlink.Store, error) {
	switch options.StoreBackend {
	case "restdb":
		if options.StoreURL == "" {
			return nil, fmt.Errorf("restdb backend requires a store URL")
		}

		return store.NewRestDB(options.StoreURL, options.StoreAPIKey), nil

	case "postgres":
		pool, err := pgxpool.New(context.Background(), options.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		pg := store.NewPostgres(pool)
		if err := pg.Migrate(context.Background()); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}

		return pg, nil

	case "memory":
		return store.NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", options.StoreBackend)
	}
}

// ShortlinkPackage provides the generator, engine and resolver.
func ShortlinkPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortlink.Generator, error) {
		options := do.MustInvoke[*Options](i)

		return shortlink.NewGenerator(options.CodeLength)
	})

	do.Provide(injector, func(i *do.Injector) (*shortlink.Engine, error) {
		options := do.MustInvoke[*Options](i)
		linkStore := do.MustInvoke[shortlink.Store](i)
		generate := do.MustInvoke[shortlink.Generator](i)

		return shortlink.NewEngine(linkStore, generate, options.Domain), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortlink.Resolver, error) {
		linkStore := do.MustInvoke[shortlink.Store](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return shortlink.NewResolver(linkStore, logger), nil
	})
}

// PublisherGroupPackage provides the analytics event publishers over the
// redis stream.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkCreatedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkCreatedEvent](group.Publisher(), analytics.TopicLinkCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkVisitedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkVisitedEvent](group.Publisher(), analytics.TopicLinkVisited), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group for the
// consumer binary.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        client,
				ConsumerGroup: "cutme-analytics",
			},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, err
		}

		analyticsStore := analyticsstore.NewRedis(client)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkCreated,
			analyticsStore.SaveLinkCreated, logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkVisited,
			analyticsStore.SaveLinkVisited, logger))

		return group, nil
	})
}

// RateLimitPackage provides the policy limiter backed by redis.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		client := do.MustInvoke[*redis.Client](i)

		return ratelimit.NewPolicyLimiter(store.NewRateLimitRedis(client), ratelimit.DefaultPolicy()), nil
	})
}

// HTTPPackage provides the chi mux and the huma API with every route and
// middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		linkStore := do.MustInvoke[shortlink.Store](i)
		limiter := do.MustInvoke[*ratelimit.PolicyLimiter](i)
		redisClient := do.MustInvoke[*redis.Client](i)

		api := humachi.New(router, huma.DefaultConfig("cutme URL shortener", "1.0.0"))

		sessions, authHandler := authComponents(options, redisClient, logger)

		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.RateLimit(api, limiter, logger),
			middleware.AuthGate(api, sessions, logger),
		)

		linkHandler := handlers.NewLinkHandler(
			do.MustInvoke[*shortlink.Engine](i),
			do.MustInvoke[*shortlink.Resolver](i),
			linkStore,
			do.MustInvoke[messaging.Publish[analytics.LinkCreatedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.LinkVisitedEvent]](i),
			logger,
		)

		handlers.RegisterRoutes(api, linkHandler, authHandler)
		handlers.RegisterStatic(router)
		health.RegisterRoutes(api, health.NewHandler(linkStore, health.NewRedisChecker(redisClient)))

		return api, nil
	})
}

// authComponents builds the session gate when credentials are configured.
// Without credentials the gate stays disabled and no login route exists.
func authComponents(options *Options, client *redis.Client, logger *zap.Logger) (auth.SessionStore, *handlers.AuthHandler) {
	if options.AdminUser == "" {
		return nil, nil
	}

	sessions := auth.NewRedisSessions(client, auth.DefaultSessionTTL)
	authenticator := auth.NewStatic(options.AdminUser, options.AdminPass)

	return sessions, handlers.NewAuthHandler(authenticator, sessions, logger)
}
