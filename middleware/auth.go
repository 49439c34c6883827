package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Eyiladeogo/MicroMart/auth"
)

// RequireAuth validates the bearer access token and stores the caller's
// identity on the context for downstream handlers.
func RequireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims, err := auth.ParseTokenOfType(tokenString, auth.TokenTypeAccess)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("is_staff", claims.IsStaff)

	c.Next()
}

// RequireStaff gates admin-only operations. It must run after RequireAuth.
func RequireStaff(c *gin.Context) {
	if !c.GetBool("is_staff") {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		c.Abort()
		return
	}
	c.Next()
}

// UserID returns the authenticated caller's id set by RequireAuth.
func UserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}

// IsStaff reports whether the authenticated caller has the staff flag.
func IsStaff(c *gin.Context) bool {
	return c.GetBool("is_staff")
}
