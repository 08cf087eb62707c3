package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
)

const currentUserKey = "current_user"

// extractTokenKey pulls the opaque token key from the Authorization header.
// Both "Bearer <key>" and the legacy "Token <key>" scheme are accepted.
func extractTokenKey(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	for _, scheme := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(header, scheme) {
			return strings.TrimSpace(strings.TrimPrefix(header, scheme))
		}
	}
	return ""
}

// RequireAuth resolves the bearer token against the auth_tokens table and
// stores the owning user in the request context. Missing or invalid tokens
// are rejected with 401, distinct from the 403 authorization failures.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := extractTokenKey(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication token required",
				},
			})
			return
		}

		user, err := models.UserByTokenKey(config.GetDB(), key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired authentication token",
				},
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the bearer token when present but lets anonymous
// requests through. Read endpoints use it to vary visibility by privilege
// (e.g. unapproved testimonials are staff-only).
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := extractTokenKey(c); key != "" {
			if user, err := models.UserByTokenKey(config.GetDB(), key); err == nil {
				c.Set(currentUserKey, user)
			}
		}
		c.Next()
	}
}

// RequireStaff rejects authenticated non-staff principals with a
// privileges-required error. Must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication token required",
				},
			})
			return
		}
		if !user.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ADMIN_REQUIRED",
					"message": "Access denied. Admin privileges required.",
				},
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the context, or nil
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// IsStaff reports whether the request is made by an authenticated staff user
func IsStaff(c *gin.Context) bool {
	user := CurrentUser(c)
	return user != nil && user.IsStaff
}
