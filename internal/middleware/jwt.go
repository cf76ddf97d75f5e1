package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rent-property-service/internal/model"
)

// IdentityKey is the gin context key holding the verified email.
const IdentityKey = "email"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Identity returns the email set by Authenticate, or "" on public routes.
func Identity(c *gin.Context) string {
	return c.GetString(IdentityKey)
}

// Authenticate requires "Authorization: Bearer <token>". A missing or
// non-Bearer header is 401; a token that fails verification is 403.
func Authenticate(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "UnAuthorized User"})
			return
		}

		email, err := tokens.Verify(strings.TrimSpace(tokenStr))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}

		c.Set(IdentityKey, email)
		c.Next()
	}
}

// RequireAdmin lets the request through only if the authenticated user has
// the admin role. Must run after Authenticate.
func RequireAdmin(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := Identity(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "UnAuthorized User"})
			return
		}

		u, err := users.FindByEmail(c.Request.Context(), email)
		if err != nil {
			log.Printf("[RequireAdmin] lookup %s: %v", email, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			return
		}
		if !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}
		c.Next()
	}
}

// RequireSelf checks that the email named by key (path parameter, else query
// value) is the authenticated identity. Must run after Authenticate.
func RequireSelf(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := Identity(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "UnAuthorized User"})
			return
		}

		target := c.Param(key)
		if target == "" {
			target = c.Query(key)
		}
		if target != email {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}
		c.Next()
	}
}
