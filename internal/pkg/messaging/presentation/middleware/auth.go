package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/auth"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

const (
	ctxParticipantID = "participantID"
	ctxRole          = "participantRole"
)

// RequireAuth verifies the Authorization bearer token and stores the asserted
// identity on the request context. 401 on any failure; the body is stable so
// the frontend can tell auth failures from transport errors.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := auth.VerifyToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ctxParticipantID, claims.ParticipantID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates an endpoint to one role; must run after RequireAuth.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, got := ParticipantFrom(c); got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// ParticipantFrom returns the authenticated identity set by RequireAuth.
func ParticipantFrom(c *gin.Context) (int64, domain.Role) {
	id, _ := c.Get(ctxParticipantID)
	role, _ := c.Get(ctxRole)
	pid, _ := id.(int64)
	r, _ := role.(domain.Role)
	return pid, r
}
