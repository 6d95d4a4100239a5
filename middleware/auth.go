package middleware

import (
	"context"
	"net/http"
	"strings"

	"localconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware.
const (
	ContextUserID   = "userID"
	ContextWorkerID = "workerID"
	ContextRole     = "role"
	ContextToken    = "token"
)

// SessionVerifier reports whether an issued token is still active.
// utils.TokenSessions implements it.
type SessionVerifier interface {
	Active(ctx context.Context, role, subject, token string) (bool, error)
}

// JWTAuthMiddleware accepts bearer tokens carrying one of roles. When sessions
// is set, revoked tokens are rejected.
func JWTAuthMiddleware(sessions SessionVerifier, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, token, ok := authenticate(c, sessions, roles)
		if !ok {
			return
		}
		setIdentity(c, claims, token)
		c.Next()
	}
}

func authenticate(c *gin.Context, sessions SessionVerifier, roles []string) (*utils.TokenClaims, string, bool) {
	tokenString, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No valid token provided"})
		return nil, "", false
	}

	claims, err := utils.ExtractClaims(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return nil, "", false
	}
	if !hasRole(claims.Role, roles) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient authorization"})
		return nil, "", false
	}

	if sessions != nil {
		active, err := sessions.Active(c.Request.Context(), claims.Role, claims.Subject, tokenString)
		switch {
		case err != nil:
			// Treat a cache failure as a miss and rely on the signature alone.
			utils.GetLogger().Warn("auth cache unavailable, falling back to stateless validation", zap.Error(err))
		case !active:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
			return nil, "", false
		}
	}
	return claims, tokenString, true
}

func setIdentity(c *gin.Context, claims *utils.TokenClaims, token string) {
	if claims.Role == utils.RoleWorker {
		c.Set(ContextWorkerID, claims.Subject)
	} else {
		c.Set(ContextUserID, claims.Subject)
	}
	c.Set(ContextRole, claims.Role)
	c.Set(ContextToken, token)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
