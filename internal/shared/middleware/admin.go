package middleware

import (
	"github.com/gin-gonic/gin"

	"futsal-backend/internal/shared/response"
)

// AdminMiddleware requires the admin role. Must run after
// AuthMiddleware, which puts user_role into the context.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != "admin" {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
