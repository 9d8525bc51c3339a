package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stuffhub/inventory-system/internal/api/handler"
	"github.com/stuffhub/inventory-system/internal/api/middleware"
	"github.com/stuffhub/inventory-system/internal/core/accounts"
	"github.com/stuffhub/inventory-system/internal/core/collection"
	"github.com/stuffhub/inventory-system/internal/core/domain"
	redisdb "github.com/stuffhub/inventory-system/internal/infrastructure/db/redis"
)

// Deps carries everything the router wires together. MongoDB and Redis may
// be nil (memory backend, Redis disabled); the dependent features degrade
// gracefully.
type Deps struct {
	Registry     *collection.Registry
	Directory    *accounts.Directory
	UserProfiles *collection.UserProfileCollection
	Mongo        *mongo.Database
	Redis        *redis.Client
	JWTSecret    string
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("inventory"))

	// --- Dependencies ---
	var dedup handler.DedupChecker
	if deps.Redis != nil {
		dedup = redisdb.NewDedupChecker(deps.Redis)
	}
	collectionHandler := handler.NewCollectionHandler(deps.Registry, dedup)
	adminHandler := handler.NewAdminHandler(deps.Registry)
	authHandler := handler.NewAuthHandler(deps.Directory, deps.UserProfiles, deps.JWTSecret, 24*time.Hour)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/signup", authHandler.Signup)

	// --- Collection methods ---
	// OptionalAuth: each collection's own role policy decides whether an
	// anonymous caller may proceed (user self-registration relies on it).
	methods := e.Group("/v1/collections", middleware.OptionalAuth(deps.JWTSecret))
	methods.POST("/define", collectionHandler.Define)
	methods.POST("/update", collectionHandler.Update)
	methods.POST("/remove", collectionHandler.RemoveIt)

	// --- Privileged whole-database operations ---
	admin := e.Group("/v1/admin", middleware.Auth(deps.JWTSecret), middleware.RBAC(domain.RoleAdmin))
	admin.POST("/dump", adminHandler.DumpDatabase)
	admin.POST("/load-fixture", adminHandler.LoadFixture)
	admin.POST("/check-integrity", adminHandler.CheckIntegrity)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
