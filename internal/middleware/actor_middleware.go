// internal/middleware/actor_middleware.go
package middleware

import (
	"crypto/rand"
	"strconv"
	"time"

	"fleet-service/internal/domain/audit"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// ActorMiddleware captures who is acting and from where, for the audit trail.
// The X-Actor-ID header is trusted as-is: authentication is handled upstream
// of this service. Requests without the header audit as actor 0.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, _ := strconv.ParseInt(c.GetHeader("X-Actor-ID"), 10, 64)

		md := audit.RequestMetadata{
			ActorID:   actorID,
			RequestIP: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		}

		c.Header("X-Request-ID", md.RequestID)
		c.Request = c.Request.WithContext(audit.WithMetadata(c.Request.Context(), md))
		c.Next()
	}
}
