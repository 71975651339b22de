package config

import (
	"time"

	"laundryos-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PerformanceLogger logs every request with its latency and warns about
// requests slower than slow.
func PerformanceLogger(log *zap.Logger, slow time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("request_id", utils.GetRequestID(c)),
		}

		if slow > 0 && latency > slow {
			log.Warn("slow request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}
