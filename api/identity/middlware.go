package identity

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maeln/r-astar/service/i"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"

	userIDClaim = "userID"
)

// Authorize rejects requests without a valid bearer token and stores the token claims in the context.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Status(http.StatusUnauthorized) // No token found in the header.
			c.Abort()
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Status(http.StatusUnauthorized) // Malformed Authorization header.
			c.Abort()
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		if id, ok := claims[userIDClaim].(string); !ok || id == "" {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		// Attach user claims to the request context for further use.
		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// UserID returns the user ID claim stored by Authorize, or false when the request was not authorized.
func UserID(c *gin.Context) (string, bool) {
	raw, ok := c.Get(ContextUserClaims)
	if !ok {
		return "", false
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return "", false
	}
	id, ok := claims[userIDClaim].(string)
	return id, ok && id != ""
}
