package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"comanda/internal/apperr"
)

// ctxRequestID is the gin context key the request-id middleware fills in.
const ctxRequestID = "request_id"

// RequestID returns the identifier assigned to the current request.
func RequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// Error writes the error envelope shared by every route.
func Error(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{
		"error":      apperr.Message(err),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": RequestID(c),
	})
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.Status(err), gin.H{
		"error":      apperr.Message(err),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": RequestID(c),
	})
}
