package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleChecker answers role membership from the store, so a role granted
// mid-session takes effect on the next request.
type RoleChecker interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

func RequireRole(checker RoleChecker, logger *zap.Logger, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role missing"})
			return
		}

		for _, allowed := range allowedRoles {
			ok, err := checker.HasRole(c.Request.Context(), userID, allowed)
			if err != nil {
				logger.Error("role lookup failed", zap.String("user_id", userID), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			if ok {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
