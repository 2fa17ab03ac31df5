package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/srrview/backend/internal/auth"
)

const (
	SessionTokenHeader = "X-Session-Token"
	ContextUserKey     = "session_user"
	ContextTokenKey    = "session_token"
)

// SessionToken pulls the token from the Authorization bearer header or the
// X-Session-Token header.
func SessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return strings.TrimSpace(c.GetHeader(SessionTokenHeader))
}

func Session(sessions *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			abortUnauthorized(c, "Login required")
			return
		}
		s, ok := sessions.Lookup(token)
		if !ok {
			abortUnauthorized(c, "Session expired or logged out")
			return
		}
		c.Set(ContextUserKey, s.Username)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
