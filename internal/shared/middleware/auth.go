package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bestiespace-backend/internal/shared/response"
	"bestiespace-backend/pkg/jwt"
)

// ContextAdminID is the gin context key holding the authenticated admin id.
const ContextAdminID = "adminID"

// AuthMiddleware validates the bearer token and stores the admin id in the
// request context. Owner-scoped routes rely on this id for scoping queries.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		adminID, err := uuid.Parse(claims.AdminID)
		if err != nil {
			response.Unauthorized(c, "invalid admin id in token")
			c.Abort()
			return
		}

		c.Set(ContextAdminID, adminID)
		c.Next()
	}
}

// AdminIDFromContext extracts the authenticated admin id set by AuthMiddleware.
func AdminIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextAdminID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
