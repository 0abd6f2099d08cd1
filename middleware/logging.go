package middleware

import (
	"time"

	"tutorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggingMiddleware attaches a request-scoped logger under "logger" and logs
// every request once it has been served.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		logger := utils.GetLogger().With(zap.String("requestId", c.GetString("requestID")))
		c.Set("logger", logger)

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Error("Request served", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("Request served", fields...)
		default:
			logger.Info("Request served", fields...)
		}
	}
}
