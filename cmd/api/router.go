package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	genreHandler "library-catalog/internal/domains/genre/handler"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
	"library-catalog/pkg/container"
	"library-catalog/web"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.SetHTMLTemplate(web.MustTemplates())

	router.GET("/health", healthCheckHandler(c))
	router.GET("/", redirectTo(genreHandler.ListURL))

	catalog := router.Group("/catalog")
	{
		catalog.GET("", redirectTo(genreHandler.ListURL))

		setupBookInstanceRoutes(catalog, c)
		setupGenreRoutes(catalog, c)
	}

	return router
}

// ========================================
// BOOK INSTANCE ROUTES
// ========================================
func setupBookInstanceRoutes(catalog *gin.RouterGroup, c *container.Container) {
	h := c.BookInstanceHandler

	catalog.GET("/bookinstances", h.List)

	// create phải đăng ký trước :id
	catalog.GET("/bookinstance/create", h.CreateForm)
	catalog.POST("/bookinstance/create", h.Create)

	instance := catalog.Group("/bookinstance/:id")
	{
		instance.GET("", h.Detail)
		instance.GET("/delete", h.DeleteForm)
		instance.POST("/delete", h.Delete)
		instance.GET("/update", h.UpdateForm)
		instance.POST("/update", h.Update)
	}
}

// ========================================
// GENRE ROUTES
// ========================================
func setupGenreRoutes(catalog *gin.RouterGroup, c *container.Container) {
	h := c.GenreHandler

	catalog.GET("/genres", h.List)

	catalog.GET("/genre/create", h.CreateForm)
	catalog.POST("/genre/create", h.Create)

	genre := catalog.Group("/genre/:id")
	{
		genre.GET("", h.Detail)
		genre.GET("/delete", h.DeleteForm)
		genre.POST("/delete", h.Delete)
		genre.GET("/update", h.UpdateForm)
		genre.POST("/update", h.Update)
	}
}

func redirectTo(location string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Redirect(c, location)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		version := "unknown"
		if appCtx.Config != nil {
			version = appCtx.Config.App.Version
		}

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disabled"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
