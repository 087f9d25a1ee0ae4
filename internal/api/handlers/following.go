package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jafarshop/dealmarket/internal/catalog"
	"github.com/jafarshop/dealmarket/internal/service"
)

// FollowShopRequest represents a follow payload
type FollowShopRequest struct {
	ShopID string `json:"shopId" binding:"required"`
}

// HandleGetFollowing handles GET /v1/following
func HandleGetFollowing(follow *service.FollowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shops := follow.Shops(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"shops": shops,
			"count": len(shops),
		})
	}
}

// HandleFollowShop handles POST /v1/following
func HandleFollowShop(cat *catalog.Catalog, follow *service.FollowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FollowShopRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		shop, ok := cat.Shop(req.ShopID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
			return
		}

		status := http.StatusOK
		if follow.Follow(c.Request.Context(), shop) {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{
			"shopId": shop.ID,
			"count":  follow.Count(c.Request.Context()),
		})
	}
}

// HandleUnfollowShop handles DELETE /v1/following/:id
func HandleUnfollowShop(follow *service.FollowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed := follow.Unfollow(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, gin.H{
			"removed": removed,
			"count":   follow.Count(c.Request.Context()),
		})
	}
}

// HandleClearFollowing handles DELETE /v1/following
func HandleClearFollowing(follow *service.FollowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		follow.Clear(c.Request.Context())
		c.Status(http.StatusNoContent)
	}
}
