package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorLogger reports errors that handlers attached with c.Error.
func ErrorLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if deviceID, ok := GetDeviceID(c); ok {
			fields = append(fields, zap.String("device_id", deviceID))
		}
		for _, e := range c.Errors {
			logger.Error("request failed", append(fields, zap.Error(e.Err))...)
		}
	}
}
