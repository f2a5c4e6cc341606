package main

import (
	"context"
	"net/http"
	"time"

	"estatehub/internal/middleware"
	"estatehub/pkg/cache"
	"estatehub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupHealthCheck()
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	a.setupAPIRoutes()
}

// setupHealthCheck pings MongoDB and Redis concurrently. Redis being down reports degraded, not unavailable.
func (a *App) setupHealthCheck() {
	pingStore := func(ctx context.Context) error {
		return a.Mongo.Ping(ctx, readpref.Primary())
	}
	var pingCache func(context.Context) error
	if a.Redis != nil {
		pingCache = func(ctx context.Context) error {
			return cache.Ping(ctx, a.Redis)
		}
	}

	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status, body := checkHealth(ctx, pingStore, pingCache)
		c.JSON(status, body)
	})
}

// checkHealth fails only on the store; a failed cache ping yields "degraded". pingCache may be nil.
func checkHealth(ctx context.Context, pingStore, pingCache func(context.Context) error) (int, gin.H) {
	var cacheErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return pingStore(gctx)
	})
	if pingCache != nil {
		g.Go(func() error {
			cacheErr = pingCache(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.GlobalLogger.Errorf("MongoDB ping failed: %v", err)
		return http.StatusServiceUnavailable, gin.H{"status": "error", "message": "MongoDB unavailable"}
	}
	if cacheErr != nil {
		logger.GlobalLogger.Warnf("Redis ping failed: %v", cacheErr)
		return http.StatusOK, gin.H{"status": "degraded", "cache": "unavailable"}
	}
	return http.StatusOK, gin.H{"status": "ok"}
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	requireAuth := middleware.AuthMiddleware(a.Config.JWT.Secret)

	api := a.Router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		authRoutes.POST("/register", a.UserHandler.Register)
		authRoutes.POST("/login", a.UserHandler.Login)
		authRoutes.GET("/search", requireAuth, a.UserHandler.SearchUsers)

		properties := api.Group("/properties")
		{
			properties.GET("", a.PropertyHandler.GetProperties)
			properties.GET("/:id", a.PropertyHandler.GetPropertyByID)
			properties.POST("", requireAuth, a.PropertyHandler.CreateProperty)
			properties.PUT("/:id", requireAuth, a.PropertyHandler.UpdateProperty)
			properties.DELETE("/:id", requireAuth, a.PropertyHandler.DeleteProperty)
		}

		favorites := api.Group("/favorites", requireAuth)
		{
			favorites.POST("", a.FavoriteHandler.AddFavorite)
			favorites.GET("", a.FavoriteHandler.ListFavorites)
			favorites.DELETE("/:propertyId", a.FavoriteHandler.RemoveFavorite)
		}

		recommendations := api.Group("/recommendations", requireAuth)
		{
			recommendations.POST("", a.RecommendationHandler.Recommend)
			recommendations.GET("/received", a.RecommendationHandler.GetReceived)
			recommendations.GET("/sent", a.RecommendationHandler.GetSent)
			recommendations.PATCH("/:recommendationId/read", a.RecommendationHandler.MarkRead)
		}
	}
}
