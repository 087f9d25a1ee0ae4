package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/service"
)

// AdminMiddleware rejects requests unless the session has admin mode on
func AdminMiddleware(profile *service.ProfileService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !profile.IsAdmin(c.Request.Context()) {
			logger.Warn("Admin route refused",
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
