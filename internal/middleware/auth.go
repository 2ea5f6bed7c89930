package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zachricha/medium-clone-api/internal/models"
	"github.com/zachricha/medium-clone-api/internal/services"
)

// TokenHeader carries the auth token on requests and is echoed on
// signup/login responses.
const TokenHeader = "x-auth"

const (
	ctxUser  = "user"
	ctxToken = "token"
)

// RequireAuth rejects the request with 401 unless the token header
// resolves to a user.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(TokenHeader)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := tokens.ResolveUser(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ctxUser, user)
		c.Set(ctxToken, tokenString)
		c.Next()
	}
}

// CheckAuth resolves the token when one is present but never rejects the
// request; a missing or invalid token just leaves it anonymous.
func CheckAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(TokenHeader)
		if tokenString == "" {
			c.Next()
			return
		}

		user, err := tokens.ResolveUser(tokenString)
		if err == nil {
			c.Set(ctxUser, user)
			c.Set(ctxToken, tokenString)
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user, or nil on anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUser); ok {
		return v.(*models.User)
	}
	return nil
}

// CurrentToken returns the raw token the request authenticated with.
func CurrentToken(c *gin.Context) string {
	if v, ok := c.Get(ctxToken); ok {
		return v.(string)
	}
	return ""
}
