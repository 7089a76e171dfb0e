package middleware

import (
	"ReframeGo/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the JWT and stores the user id in the gin
// context under "uid". Everything behind it can assume the auth context
// is already resolved.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		c.Set("uid", claims.UserID)
		c.Next()
	}
}
