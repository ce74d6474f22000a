package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warehouse/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects request bodies larger than maxBytes before a handler reads
// them. The declared Content-Length is checked up front; MaxBytesReader covers
// chunked requests that carry no length.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(
					dto.ErrCodeRequestTooLarge,
					"Request body exceeds maximum allowed size",
					c.GetString("request_id"),
				))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
