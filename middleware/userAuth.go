package middleware

import (
	"localconnect/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthUserMiddleware requires a customer token.
func JWTAuthUserMiddleware(sessions SessionVerifier) gin.HandlerFunc {
	return JWTAuthMiddleware(sessions, utils.RoleUser)
}

// JWTAuthWorkerMiddleware requires a worker token.
func JWTAuthWorkerMiddleware(sessions SessionVerifier) gin.HandlerFunc {
	return JWTAuthMiddleware(sessions, utils.RoleWorker)
}

// OptionalUserAuth identifies the customer when a valid token is sent and
// lets anonymous requests through. Invalid tokens are treated as anonymous.
func OptionalUserAuth(sessions SessionVerifier) gin.HandlerFunc {
	return optionalAuth(sessions, utils.RoleUser)
}

// OptionalWorkerAuth is OptionalUserAuth for worker tokens.
func OptionalWorkerAuth(sessions SessionVerifier) gin.HandlerFunc {
	return optionalAuth(sessions, utils.RoleWorker)
}

func optionalAuth(sessions SessionVerifier, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		claims, err := utils.ExtractClaims(tokenString)
		if err != nil || claims.Role != role {
			c.Next()
			return
		}
		if sessions != nil {
			if active, err := sessions.Active(c.Request.Context(), claims.Role, claims.Subject, tokenString); err == nil && !active {
				c.Next()
				return
			}
		}
		setIdentity(c, claims, tokenString)
		c.Next()
	}
}
