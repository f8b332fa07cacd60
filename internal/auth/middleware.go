package auth

import (
	"net/http"

	"github.com/Vlad1805/blogmates-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie is the HTTP-only cookie carrying the access token.
const AccessTokenCookie = "access_token"

// RefreshTokenCookie is the HTTP-only cookie carrying the refresh token.
const RefreshTokenCookie = "refresh_token"

// AuthMiddleware requires a valid access token cookie and sets the userID in
// the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AccessTokenCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		userID, err := jwt.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
