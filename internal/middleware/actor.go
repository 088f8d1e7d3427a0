package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// actorHeader carries the authenticated user's ID. Authentication itself is
// handled upstream (the desktop shell / API gateway); this core only needs
// the identity for audit fields.
const actorHeader = "X-Actor-ID"

// ActorMiddleware extracts the acting user ID from the gateway header and
// stores it in the request context. Requests without an identity are
// rejected: every mutation stamps CreatedBy/LastUpdatedBy.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(actorHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + actorHeader + " header"})
			return
		}

		c.Set(string(userIDKey), userID)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), userIDKey, userID),
		)
		c.Next()
	}
}
