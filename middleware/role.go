package middleware

import "github.com/gin-gonic/gin"

// UserID returns the authenticated customer id, if any.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// WorkerID returns the authenticated worker id, if any.
func WorkerID(c *gin.Context) string {
	return c.GetString(ContextWorkerID)
}

// Subject returns whichever account id the token identified.
func Subject(c *gin.Context) (id, role string) {
	role = c.GetString(ContextRole)
	if id = WorkerID(c); id != "" {
		return id, role
	}
	return UserID(c), role
}

// Token returns the raw bearer token of the request.
func Token(c *gin.Context) string {
	return c.GetString(ContextToken)
}
