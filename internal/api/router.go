package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/durgamdileep/product-auth-api/internal/api/handler"
	"github.com/durgamdileep/product-auth-api/internal/api/middleware"
	"github.com/durgamdileep/product-auth-api/internal/core/authz"
	"github.com/durgamdileep/product-auth-api/internal/core/ports"
	"github.com/durgamdileep/product-auth-api/internal/core/service"
	"github.com/durgamdileep/product-auth-api/internal/core/session"
	"github.com/durgamdileep/product-auth-api/internal/infrastructure/crypto"
	mongodb "github.com/durgamdileep/product-auth-api/internal/infrastructure/db/mongo"
	redisdb "github.com/durgamdileep/product-auth-api/internal/infrastructure/db/redis"
	"github.com/durgamdileep/product-auth-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with the authentication pipeline for
// the configured mode, the authorization engine, and all routes registered.
// rdb may be nil unless the config selects the Redis session store.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *mongo.Database, rdb *redis.Client) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("authapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)

	var (
		authService ports.AuthService
		sessions    ports.SessionRegistry
	)

	switch cfg.AuthMode {
	case config.AuthModeToken:
		tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("token service: %w", err)
		}
		authService = service.NewAuthService(userRepo, hasher, tokens, log)
		e.Use(middleware.TokenAuth(tokens))

	case config.AuthModeBasic:
		authService = service.NewAuthService(userRepo, hasher, nil, log)
		if cfg.SessionStore == config.SessionStoreRedis {
			if rdb == nil {
				return nil, fmt.Errorf("session store %q requires a redis client", cfg.SessionStore)
			}
			sessions = redisdb.NewSessionRegistry(rdb, cfg.SessionTTL)
		} else {
			sessions = session.NewRegistry()
		}
		e.Use(middleware.BasicAuth(authService, sessions))

	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}

	engine := authz.NewEngine(authz.DefaultPolicies())
	e.Use(middleware.Authorize(engine))

	// --- User routes ---
	userHandler := handler.NewUserHandler(authService, sessions)
	e.POST("/api/User/signup", userHandler.Signup)
	e.POST("/api/User/login", userHandler.Login)
	if sessions != nil {
		e.POST("/api/User/logout", userHandler.Logout)
	}

	// --- Product routes ---
	productService := service.NewProductService(productRepo)
	productHandler := handler.NewProductHandler(productService)
	e.POST("/api/products", productHandler.Create)
	e.GET("/api/products", productHandler.List)
	e.GET("/api/products/getProduct/:id", productHandler.Get)
	e.PUT("/api/products/update/:id", productHandler.Update)
	e.DELETE("/api/products/delete/:id", productHandler.Delete)

	// --- Health probes and metrics (policy table permits these) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
