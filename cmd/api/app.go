package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"estatehub/internal/handlers"
	"estatehub/internal/middleware"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/transformers"
	"estatehub/internal/validators"
	"estatehub/pkg/cache"
	"estatehub/pkg/config"
	"estatehub/pkg/database"
	"estatehub/pkg/logger"
	"estatehub/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// App represents the application structure
type App struct {
	Config                *config.Config
	Router                *gin.Engine
	Mongo                 *mongo.Client
	DB                    *mongo.Database
	Redis                 *redis.Client
	Cache                 *cache.ReadThrough
	PropertyHandler       *handlers.PropertyHandler
	FavoriteHandler       *handlers.FavoriteHandler
	RecommendationHandler *handlers.RecommendationHandler
	UserHandler           *handlers.UserHandler
	RateLimiter           *middleware.RateLimiter
	Server                *http.Server
}

// Create and initialize a new App instance
func NewApp(ctx context.Context, cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeMetrics()
	app.initializeDatabase()
	app.initializeCache(ctx)
	app.initializeRateLimiter(ctx)

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the database connection; the store is required
func (a *App) initializeDatabase() {
	client, db, err := database.Connect(a.Config)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	a.Mongo, a.DB = client, db

	if err := database.EnsureIndexes(db); err != nil {
		logger.GlobalLogger.Warnf("Failed to ensure indexes: %v", err)
	}
}

// initialize the Redis cache; an unreachable server degrades reads to the store
func (a *App) initializeCache(ctx context.Context) {
	if !a.Config.CacheEnabled() {
		logger.GlobalLogger.Println("Cache disabled, serving every read from MongoDB")
		a.Cache = cache.NewReadThrough(cache.NoopStore{}, a.Config.Cache.TTL)
		return
	}

	client, err := cache.NewClient(a.Config)
	if err != nil {
		logger.GlobalLogger.Warnf("Redis misconfigured, cache disabled: %v", err)
		a.Cache = cache.NewReadThrough(cache.NoopStore{}, a.Config.Cache.TTL)
		return
	}
	if err := cache.Ping(ctx, client); err != nil {
		logger.GlobalLogger.Warnf("Redis unavailable at startup, continuing without cache hits: %v", err)
	} else {
		logger.GlobalLogger.Println("Redis connected successfully.")
	}

	a.Redis = client
	a.Cache = cache.NewReadThrough(cache.NewRedisStore(client, a.Config.Cache.OpTimeout), a.Config.Cache.TTL)
}

// initialize the rate limiter
func (a *App) initializeRateLimiter(ctx context.Context) {
	a.RateLimiter = middleware.NewRateLimiter(a.Config.RateLimit.RequestsPerMinute, a.Config.RateLimit.Burst)
	go a.RateLimiter.Cleanup(ctx, time.Minute)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	// repositories
	propertyRepo := repositories.NewPropertyRepository(a.DB)
	userRepo := repositories.NewUserRepository(a.DB)

	// transformers
	propTrans := transformers.NewPropertyTransformer(transformers.NewAddressTransformer())

	// validators
	propertyValidator := validators.NewPropertyValidator()
	userValidator := validators.NewUserValidator()
	recommendationValidator := validators.NewRecommendationValidator()

	// services
	propertyService := services.NewPropertyService(propertyRepo, a.Cache, propTrans, propertyValidator)
	favoriteService := services.NewFavoriteService(userRepo, propertyRepo, a.Cache)
	recommendationService := services.NewRecommendationService(userRepo, propertyRepo, recommendationValidator)
	userService := services.NewUserService(userRepo, userValidator, a.Config.JWT.Secret, a.Config.JWT.TTL)

	// handlers
	a.PropertyHandler = handlers.NewPropertyHandler(propertyService)
	a.FavoriteHandler = handlers.NewFavoriteHandler(favoriteService)
	a.RecommendationHandler = handlers.NewRecommendationHandler(recommendationService)
	a.UserHandler = handlers.NewUserHandler(userService)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	database.Disconnect(a.Mongo)
	cache.Close(a.Redis)
}
