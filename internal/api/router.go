package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/recordkeep/customer-api/docs"
	"github.com/recordkeep/customer-api/internal/api/handler"
	"github.com/recordkeep/customer-api/internal/api/middleware"
	"github.com/recordkeep/customer-api/internal/core/domain"
	"github.com/recordkeep/customer-api/internal/core/service"
	"github.com/recordkeep/customer-api/internal/core/token"
	"github.com/recordkeep/customer-api/pkg/logger"

	mongodb "github.com/recordkeep/customer-api/internal/infrastructure/db/mongo"
	redisdb "github.com/recordkeep/customer-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Authentication runs globally but never rejects; each protected group
// adds its own RequireAuth (and role) guard, so public routes share the
// same chain.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("customerapi"))

	// --- Dependencies ---
	codec := token.NewCodec(jwtSecret, tokenTTL)

	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, service.NewBcryptHasher(), codec)
	authHandler := handler.NewAuthHandler(authService)

	customerRepo := mongodb.NewCustomerRepository(db)
	aggCache := redisdb.NewAggregateCache(rdb)
	customerService := service.NewCustomerService(customerRepo, aggCache, logger.Get())
	customerHandler := handler.NewCustomerHandler(customerService, logger.Get())

	e.Use(middleware.Authenticate(codec, userRepo))

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Customer routes (authenticated) ---
	customers := e.Group("/v1/customers", middleware.RequireAuth())
	customers.POST("", customerHandler.Create)
	customers.GET("", customerHandler.List)
	customers.GET("/average-age", customerHandler.AverageAge)
	customers.GET("/age-range", customerHandler.AgeRange)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
