package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"mediconnect/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxSubjectID = "subjectID"
	CtxRole      = "role"
)

// AuthMiddleware validates the bearer token and checks that its hash is
// still the live session for the subject. Logout or a newer login
// invalidates older tokens even before they expire.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		subject, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		cached, err := utils.GetAuthCacheClient().Get(ctx, utils.AuthCachePrefix+subject).Result()
		if err != nil || cached != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
			return
		}

		c.Set(CtxSubjectID, subject)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// RequireRole gates a route group to one role. It assumes AuthMiddleware
// already ran.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireDoctor gates a route group to doctor accounts.
func RequireDoctor() gin.HandlerFunc { return RequireRole(utils.RoleDoctor) }

// RequirePatient gates a route group to patient accounts.
func RequirePatient() gin.HandlerFunc { return RequireRole(utils.RolePatient) }
