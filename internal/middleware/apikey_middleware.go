package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "github.com/fanzone/fanzone-backend/internal/errors"
	"github.com/fanzone/fanzone-backend/pkg/logger"
)

const apiKeyHeader = "X-API-Key"

// RequireAPIKey guards the admin endpoints. The key is compared in
// constant time; a missing key gives 401 and a wrong one gives 403.
func RequireAPIKey(expectedKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expectedKey == "" {
			logger.Error("Admin API key is not configured", nil, map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.InternalError(c, "")
			c.Abort()
			return
		}

		provided := c.GetHeader(apiKeyHeader)
		if provided == "" {
			apperrors.Unauthorized(c, "Kërkohet çelësi i administratorit")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expectedKey)) != 1 {
			logger.Warn("Rejected admin request with invalid API key", map[string]interface{}{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			})
			apperrors.Forbidden(c, "Çelësi i administratorit nuk është i vlefshëm")
			c.Abort()
			return
		}

		c.Next()
	}
}
