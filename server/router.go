// Package server exposes a cash book over a JSON HTTP API.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New wires the Gin engine with the book routes and middlewares.
func New(handler *Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/closings", handler.AddClosing)
	api.GET("/closings/:date", handler.GetClosing)
	api.POST("/stock", handler.AddPurchase)
	api.POST("/stock/import", handler.ImportPurchases)
	api.POST("/fixed", handler.AddFixedCost)
	api.GET("/categories/:kind", handler.GetCategories)
	api.POST("/categories/:kind", handler.AddCategory)
	api.GET("/months", handler.GetMonths)
	api.GET("/months/:month", handler.GetMonth)
	api.GET("/summary", handler.GetSummary)

	if logger != nil {
		logger.Info("router initialized")
	}
	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
