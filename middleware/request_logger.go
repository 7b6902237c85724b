package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)

		reqLogger := logger.With(zap.String("requestId", reqID))
		c.Set("logger", reqLogger)

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", clientIP(c)),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLogger.Error("request", fields...)
		case status >= 400:
			reqLogger.Warn("request", fields...)
		default:
			reqLogger.Info("request", fields...)
		}
	}
}
