package auth

import (
	"github.com/Vlad1805/blogmates-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware inspects the access token cookie and sets the
// userID if present and valid, but does not fail if the cookie is missing or
// invalid. Requests without a usable token proceed as anonymous.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AccessTokenCookie)
		if err == nil && tokenString != "" {
			if userID, err := jwt.ParseToken(tokenString); err == nil {
				c.Set("userID", userID)
			}
		}
		c.Next()
	}
}
