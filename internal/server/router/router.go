package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/storemanager/internal/metrics"
	"github.com/mamadbah2/storemanager/internal/server/handlers"
)

// Service names used as the metrics "service" label.
const (
	ServiceBackend  = "backend"
	ServiceFrontend = "frontend"
)

// NewBackend wires the item store API. Any origin may call it.
func NewBackend(items *handlers.ItemsHandler, logger *zap.Logger) *gin.Engine {
	r := newEngine(ServiceBackend, logger)
	r.Use(cors.Default())

	api := r.Group("/api")
	api.GET("/items", items.List)
	api.POST("/items", items.Create)
	api.DELETE("/items/:id", items.Delete)

	if logger != nil {
		logger.Info("backend router initialized")
	}
	return r
}

// NewFrontend wires the page and the relay routes.
func NewFrontend(proxy *handlers.ProxyHandler, logger *zap.Logger) *gin.Engine {
	r := newEngine(ServiceFrontend, logger)

	r.GET("/", handlers.Home)

	p := r.Group("/proxy")
	p.GET("/items", proxy.List)
	p.POST("/items", proxy.Create)
	p.DELETE("/items/:id", proxy.Delete)

	if logger != nil {
		logger.Info("frontend router initialized")
	}
	return r
}

func newEngine(service string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	metrics.Register()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(service, logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

func zapLoggerMiddleware(service string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(service, route, c.Request.Method, c.Writer.Status())

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
