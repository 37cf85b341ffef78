package httpx

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"comanda/internal/logger"
)

// Logging assigns a request id and logs request start and completion.
func Logging(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		c.Set(ctxRequestID, requestID)

		log.Debug("request_started",
			requestID,
			fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path),
			map[string]any{
				"method":      c.Request.Method,
				"path":        c.Request.URL.Path,
				"remote_addr": c.ClientIP(),
				"user_agent":  c.Request.UserAgent(),
			})

		c.Next()

		log.Debug("request_completed",
			requestID,
			fmt.Sprintf("%s %s - %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status()),
			map[string]any{
				"method":      c.Request.Method,
				"path":        c.Request.URL.Path,
				"status_code": c.Writer.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
	}
}
