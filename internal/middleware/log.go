package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDKey is where the request id is stored on the gin context. The
// same value is echoed back in the X-Request-Id response header.
const RequestIDKey = "requestId"

// RequestLogger tags each request with a uuid and logs method, path,
// status and latency once the handler chain finishes.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		event := log.Info()
		if len(c.Errors) > 0 || c.Writer.Status() >= 500 {
			event = log.Error()
		}
		event.
			Str("requestId", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP())
		if userID := CurrentUserID(c); userID != "" {
			event = event.Str("userId", userID)
		}
		event.Msg("request")
	}
}
