package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lumos-Labs-HQ/datamock/internal/logger"
)

// NewRouter wires the handler into a gin engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.log))

	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/classify", h.Classify)
		v1.POST("/defaults", h.Defaults)
		v1.POST("/validate", h.Validate)
		v1.POST("/convert/to-server", h.ToServer)
		v1.POST("/convert/to-form", h.ToForm)
		v1.POST("/preview", h.Preview)
	}
	return r
}

func requestLogger(log logger.LoggerI) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Any("latency", time.Since(start).String()),
		)
	}
}
