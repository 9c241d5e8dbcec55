package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "jainvest/internal/errors"
)

// PipelineAuthMiddleware guards the price oracle endpoints with the shared
// X-API-Key. An empty configured key disables them.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWithError(c, apperrors.ErrPipelineNotConfigured)
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWithError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}
