package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/service"
)

// AdminSessionRequest represents the admin passcode payload
type AdminSessionRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// HandleGetProfile handles GET /v1/profile
func HandleGetProfile(profile *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		p := profile.Get(ctx)
		c.JSON(http.StatusOK, gin.H{
			"profile":    p,
			"isLoggedIn": p.IsLoggedIn(),
			"isAdmin":    profile.IsAdmin(ctx),
		})
	}
}

// HandleLogin handles PUT /v1/profile
func HandleLogin(profile *service.ProfileService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.UserProfile
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		p, err := profile.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "log in")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// HandleUpdateProfile handles PATCH /v1/profile
func HandleUpdateProfile(profile *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !profile.IsLoggedIn(c.Request.Context()) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		var patch service.ProfilePatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, profile.Update(c.Request.Context(), patch))
	}
}

// HandleLogout handles DELETE /v1/profile
func HandleLogout(profile *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile.Logout(c.Request.Context())
		c.Status(http.StatusNoContent)
	}
}

// HandleEnableAdmin handles POST /v1/admin/session
func HandleEnableAdmin(profile *service.ProfileService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := profile.EnableAdmin(c.Request.Context(), req.Passcode); err != nil {
			respondError(c, logger, err, "enable admin mode")
			return
		}
		c.JSON(http.StatusOK, gin.H{"isAdmin": true})
	}
}

// HandleDisableAdmin handles DELETE /v1/admin/session
func HandleDisableAdmin(profile *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile.DisableAdmin(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"isAdmin": false})
	}
}
