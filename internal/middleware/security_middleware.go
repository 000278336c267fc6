package middleware

import (
	"net/http"
	"strings"

	"go-supermart-pos/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks the bearer token and stashes the verified
// identity in the request context. Identity is recomputed every call;
// the server holds no session state.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header must start with Bearer"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequirePermission gates a route on the capability table.
func RequirePermission(op auth.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if !auth.Allowed(role, op) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}
