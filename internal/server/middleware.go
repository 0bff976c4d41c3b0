package server

import (
	"net/http"
	"strings"
	"time"

	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's user ID on the context.
func RequireAuth(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerSubject(c, tokens)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid authorization")
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is present but lets
// anonymous requests through. Handlers decide what anonymous callers see.
func OptionalAuth(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerSubject(c, tokens); ok {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func bearerSubject(c *gin.Context, tokens *TokenIssuer) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return "", false
	}
	return userID, true
}
