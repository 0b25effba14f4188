// Package api implements the HTTP surface over the article store and the
// resolution pipeline.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/newsgate/internal/api/middleware"
	"github.com/jonesrussell/newsgate/internal/config"
	"github.com/jonesrussell/newsgate/internal/logger"
)

// readHeaderTimeout bounds header reads independently of body timeouts.
const readHeaderTimeout = 10 * time.Second

// SetupRouter creates and configures the Gin router with all routes.
func SetupRouter(log logger.Interface, h *Handler, cfg config.Interface) *gin.Engine {
	// Disable Gin's default logging
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.GetServerConfig().AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	news := router.Group("/api/news")
	news.GET("", h.ListNews)
	news.GET("/featured", h.FeaturedNews)
	news.GET("/latest", h.LatestNews)
	news.GET("/providers", h.Providers)
	news.GET("/categories", h.Categories)
	news.GET("/provider/:provider", h.NewsByProvider)
	news.GET("/df/url", h.ResolveByURL)
	news.GET("/df-test/:id", h.TestResolve)
	news.GET("/df-test-url", h.TestExtract)
	news.GET("/:id", h.GetNews)

	return router
}

// StartHTTPServer builds the HTTP server around the configured router.
func StartHTTPServer(log logger.Interface, h *Handler, cfg config.Interface) *http.Server {
	serverCfg := cfg.GetServerConfig()
	return &http.Server{
		Addr:              serverCfg.Address,
		Handler:           SetupRouter(log, h, cfg),
		ReadTimeout:       serverCfg.ReadTimeout,
		WriteTimeout:      serverCfg.WriteTimeout,
		IdleTimeout:       serverCfg.IdleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// loggingMiddleware creates a middleware that logs HTTP requests
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}

// corsMiddleware adds CORS headers to allow frontend access
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case originAllowed(origin, allowedOrigins):
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, "+
				"accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, o := range allowed {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
