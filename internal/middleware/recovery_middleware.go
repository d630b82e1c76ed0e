// internal/middleware/recovery_middleware.go
package middleware

import (
	"net/http"

	"fleet-service/internal/domain/audit"
	"fleet-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware converts panics into a 500 response. The request id and
// actor stamped by ActorMiddleware are logged so the failure can be matched
// to its audit entries.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				md := audit.MetadataFrom(c.Request.Context())
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", md.RequestID),
					zap.Int64("actor_id", md.ActorID),
				)
				response.Error(c, http.StatusInternalServerError, "internal server error", nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}
