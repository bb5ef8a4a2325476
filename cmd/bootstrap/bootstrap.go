package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-catalog/config"
	deliveryHttp "product-catalog/internal/delivery/http"
	"product-catalog/internal/delivery/http/handler"
	"product-catalog/internal/delivery/http/middleware"
	domainRepo "product-catalog/internal/domain/repository"
	"product-catalog/internal/infrastructure/cache"
	"product-catalog/internal/infrastructure/database"
	"product-catalog/internal/infrastructure/telemetry"
	"product-catalog/internal/repository"
	"product-catalog/internal/usecase"
	"product-catalog/pkg/jwt"
	"product-catalog/pkg/logger"
	"product-catalog/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultShutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config         *config.Config
	Log            *logrus.Logger
	DB             *gorm.DB
	RedisClient    *redis.Client
	TracerProvider *telemetry.Provider
	Server         *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{Log: logrus.StandardLogger()}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	if err := logger.Setup(app.Log, os.Stdout, cfg.App.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	app.Log.Info("Configuration loaded successfully")

	// Initialize tracing
	tp, err := telemetry.NewProvider(context.Background(), cfg.Tracing, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.TracerProvider = tp

	// Run migrations
	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(cfg.DB, app.Log); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, app.Log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.Log.Info("Database connected successfully")

	// Initialize Redis
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		app.Log.Info("Redis connected successfully")
	}

	// Initialize all layers
	server, err := app.initializeServer()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() (*http.Server, error) {
	cfg := app.Config

	sqlDB, err := app.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	var productRepo domainRepo.ProductRepository = repository.NewProductRepository(app.DB)
	if app.RedisClient != nil {
		productRepo = repository.NewCachedProductRepository(productRepo, app.RedisClient, cfg.Redis.CacheTTL, app.Log)
	}

	// Initialize usecases
	productUsecase := usecase.NewProductUsecase(app.Log, productRepo)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productUsecase, customValidator)
	healthHandler := handler.NewHealthHandler(sqlDB, app.Log)

	// Initialize middleware
	var authMiddleware *middleware.AuthMiddleware
	if cfg.Auth.Secret != "" {
		authMiddleware = middleware.NewAuthMiddleware(jwt.NewJWTService(cfg.Auth))
		app.Log.Info("Authentication enabled for product writes")
	}
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(app.Log, app.TracerProvider, productHandler, healthHandler, authMiddleware, corsMiddleware)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: router.Setup(),
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.App.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close flushes pending spans and closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Shutdown tracer provider
	if app.TracerProvider != nil {
		timeout := defaultShutdownTimeout
		if app.Config != nil && app.Config.App.ShutdownTimeout > 0 {
			timeout = app.Config.App.ShutdownTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := app.TracerProvider.Shutdown(ctx); err != nil {
			app.Log.Errorf("Failed to shutdown tracer provider: %v", err)
		}
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
