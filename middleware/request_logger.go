package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ruedo-cms/logging"
	"ruedo-cms/metrics"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and writes one log line and
// the HTTP metrics once it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), status, elapsed)

		event := logging.Info()
		if status >= 500 {
			event = logging.Error()
		}
		event = event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", elapsed)
		if user := CurrentUser(c); user != nil {
			event = event.Uint("user_id", user.ID)
		}
		event.Msg("request")
	}
}
