package api

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/shmakov/account-service/docs"
	"github.com/shmakov/account-service/internal/api/handler"
	"github.com/shmakov/account-service/internal/api/middleware"
	"github.com/shmakov/account-service/internal/core/ports"
	"github.com/shmakov/account-service/internal/core/service"
	mongostore "github.com/shmakov/account-service/internal/infrastructure/db/mongo"
	"github.com/shmakov/account-service/internal/infrastructure/db/postgres"
	redisstore "github.com/shmakov/account-service/internal/infrastructure/db/redis"
)

// Dependencies carries the connections the router wires into handlers.
// Redis and Mongo are optional; when nil the account cache or the audit
// trail is disabled.
type Dependencies struct {
	DB       *sql.DB
	Redis    *redis.Client
	Mongo    *mongo.Database
	CacheTTL time.Duration
	Logger   zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics and /metrics.
	// They default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "accounts",
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/swagger")
		},
	}))

	// --- Dependencies ---
	var cache ports.AccountCache
	if deps.Redis != nil {
		cache = redisstore.NewAccountCache(deps.Redis, deps.CacheTTL)
	}
	var audit ports.AuditLog
	if deps.Mongo != nil {
		audit = mongostore.NewAuditRepository(deps.Mongo)
	}

	accountRepo := postgres.NewAccountRepository(deps.DB)
	accountService := service.NewAccountService(accountRepo, cache, audit, deps.Logger)
	accountHandler := handler.NewAccountHandler(accountService)

	// --- Account routes ---
	e.POST("/accounts", accountHandler.Create)
	e.GET("/accounts/:id", accountHandler.Get)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(dependencyChecks(deps))

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func dependencyChecks(deps Dependencies) map[string]handler.DependencyCheck {
	checks := map[string]handler.DependencyCheck{
		"postgres": deps.DB.PingContext,
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}
	if deps.Mongo != nil {
		checks["mongodb"] = func(ctx context.Context) error {
			return deps.Mongo.Client().Ping(ctx, nil)
		}
	}
	return checks
}
