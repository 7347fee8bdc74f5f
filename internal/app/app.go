package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/pos-microservices/storefront-service/config"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/controller"
	rediscache "github.com/alimikegami/pos-microservices/storefront-service/internal/infrastructure/cache/redis"
	circuitbreaker "github.com/alimikegami/pos-microservices/storefront-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/infrastructure/database/postgres"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/infrastructure/database/sqlite"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/pos-microservices/storefront-service/internal/middleware"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/repository"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/service"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/httpclient"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/sdk/trace"
)

const catalogBreakerTimeout = 30 * time.Second

type App struct {
	Config *config.Config
	Server *echo.Echo
	// CartRepo replaces the store selected by CART_STORE_DRIVER when set.
	CartRepo repository.CartRepository

	metrics       *echo.Echo
	registry      *prometheus.Registry
	scheduler     gocron.Scheduler
	redisClient   *redis.Client
	kafkaCloser   func() error
	traceProvider *trace.TracerProvider
}

// Setup builds the echo server and everything behind it without listening.
func (app *App) Setup() error {
	setupLogger(app.Config.LogLevel)

	traceProvider, err := tracing.InitTracing(app.Config.ServiceName, app.Config.TracingConfig.CollectorHost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
	}
	app.traceProvider = traceProvider

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if traceProvider != nil {
		tracer := traceProvider.Tracer(app.Config.ServiceName)

		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				// span creation and naming
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				// add the context to the request
				req := c.Request()
				c.SetRequest(req.WithContext(ctx))

				return next(c)
			}
		})
	}

	app.registry = prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{Registerer: app.registry}))

	e.Use(middleware.Recover())
	e.Use(localmiddleware.Logger)

	cartRepo := app.CartRepo
	if cartRepo == nil {
		cartRepo, err = app.createCartRepository()
		if err != nil {
			return fmt.Errorf("creating cart store %q: %w", app.Config.CartStoreConfig.Driver, err)
		}
		app.CartRepo = cartRepo
	}

	catalogRepo, err := app.createCatalogRepository()
	if err != nil {
		return err
	}

	var publisher service.EventPublisher
	if app.Config.KafkaConfig.BrokerAddress != "" {
		conn, err := kafka.CreateKafkaProducer(app.Config.KafkaConfig)
		if err != nil {
			log.Error().Err(err).Str("component", "Setup").Msg("cart events disabled, broker unreachable")
		} else {
			app.kafkaCloser = conn.Close
			publisher = kafka.CreateKafkaPublisher(conn)
		}
	}

	g := e.Group("/api/v1")

	productSvc := service.CreateProductService(catalogRepo, app.Config.CatalogConfig.PageLimit)
	cartSvc := service.CreateCartService(cartRepo, productSvc, publisher)
	controller.CreateProductController(g, productSvc)
	controller.CreateCartController(g, cartSvc)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	if app.Config.MetricsPort != "" {
		app.metrics = echo.New()
		app.metrics.HideBanner = true
		app.metrics.HidePort = true
		app.metrics.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: app.registry}))
	}

	app.Server = e

	return nil
}

// Start listens until StopServer is called. It runs Setup first unless the caller
// already did.
func (app *App) Start() error {
	if app.Server == nil {
		if err := app.Setup(); err != nil {
			return err
		}
	}

	if app.metrics != nil {
		go func() {
			if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Failed to start metrics server")
			}
		}()
	}

	if app.scheduler != nil {
		app.scheduler.Start()
	}

	log.Info().Str("port", app.Config.ServicePort).Str("cart_store", app.Config.CartStoreConfig.Driver).Msg("starting server")

	err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errList []error
	if app.Server != nil {
		errList = append(errList, app.Server.Shutdown(ctx))
	}
	if app.metrics != nil {
		errList = append(errList, app.metrics.Shutdown(ctx))
	}
	if app.scheduler != nil {
		errList = append(errList, app.scheduler.Shutdown())
	}
	if app.CartRepo != nil {
		errList = append(errList, app.CartRepo.Close())
	}
	if app.redisClient != nil {
		errList = append(errList, app.redisClient.Close())
	}
	if app.kafkaCloser != nil {
		errList = append(errList, app.kafkaCloser())
	}
	if app.traceProvider != nil {
		errList = append(errList, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(errList...)
}

func setupLogger(level string) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
}

func (app *App) getRedisClient() (*redis.Client, error) {
	if app.redisClient != nil {
		return app.redisClient, nil
	}

	client, err := rediscache.CreateRedisClient(app.Config.RedisConfig)
	if err != nil {
		return nil, err
	}
	app.redisClient = client

	return client, nil
}

func (app *App) createCartRepository() (repository.CartRepository, error) {
	switch app.Config.CartStoreConfig.Driver {
	case config.CartStoreMemory:
		return repository.CreateMemoryCartRepository(), nil
	case config.CartStoreRedis:
		client, err := app.getRedisClient()
		if err != nil {
			return nil, err
		}
		return repository.CreateRedisCartRepository(client, app.Config.CartStoreConfig.TTL), nil
	case config.CartStoreSQLite:
		db, err := sqlite.CreateDBInstance(app.Config.SQLiteConfig)
		if err != nil {
			return nil, err
		}
		return repository.CreateSQLCartRepository(context.Background(), db)
	case config.CartStorePostgres:
		db, err := postgres.CreateDBInstance(app.Config.PostgreSQLConfig)
		if err != nil {
			return nil, err
		}
		return repository.CreateSQLCartRepository(context.Background(), db)
	default:
		return nil, errors.New("unknown cart store driver")
	}
}

func (app *App) createCatalogRepository() (repository.CatalogRepository, error) {
	catalogConf := app.Config.CatalogConfig

	cb := circuitbreaker.CreateCircuitBreaker("catalog", catalogBreakerTimeout)
	var catalogRepo repository.CatalogRepository = repository.CreateHTTPCatalogRepository(
		catalogConf.BaseURL,
		httpclient.CreateClient(catalogConf.Timeout),
		cb,
	)

	if catalogConf.CacheTTL <= 0 || app.Config.RedisConfig.Address == "" {
		return catalogRepo, nil
	}

	client, err := app.getRedisClient()
	if err != nil {
		log.Error().Err(err).Str("component", "createCatalogRepository").Msg("catalog cache disabled")
		return catalogRepo, nil
	}

	cached := repository.CreateCachedCatalogRepository(catalogRepo, client, catalogConf.CacheTTL)

	if catalogConf.RefreshInterval > 0 {
		if err := app.scheduleCatalogRefresh(cached); err != nil {
			return nil, err
		}
	}

	return cached, nil
}

func (app *App) scheduleCatalogRefresh(cached *repository.CachedCatalogRepositoryImpl) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	limit := app.Config.CatalogConfig.PageLimit
	timeout := app.Config.CatalogConfig.Timeout

	_, err = s.NewJob(
		gocron.DurationJob(
			app.Config.CatalogConfig.RefreshInterval,
		),
		gocron.NewTask(
			func() {
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()

				if _, err := cached.Refresh(ctx, limit); err != nil {
					log.Error().Err(err).Str("component", "RefreshCatalogCache").Msg("")
				}
			},
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	app.scheduler = s

	return nil
}
