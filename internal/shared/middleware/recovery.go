package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"futsal-backend/internal/shared/response"
)

// Recovery turns panics into the standard error envelope so a broken
// handler never leaks a stack trace to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Bytes("stack", debug.Stack()).
					Msg("Panic recovered")

				response.InternalServerError(c, "Something went wrong")
				c.Abort()
			}
		}()

		c.Next()
	}
}
