package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/catalog"
	"github.com/jafarshop/dealmarket/internal/service"
)

// SaveOfferRequest represents a wishlist add payload
type SaveOfferRequest struct {
	OfferID string `json:"offerId" binding:"required"`
}

// HandleGetWishlist handles GET /v1/wishlist
func HandleGetWishlist(wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := wishlist.Items(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"count": len(items),
		})
	}
}

// HandleAddToWishlist handles POST /v1/wishlist
func HandleAddToWishlist(cat *catalog.Catalog, wishlist *service.WishlistService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveOfferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		offer, ok := cat.Offer(req.OfferID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
			return
		}

		added := wishlist.Add(c.Request.Context(), offer)
		logger.Debug("Wishlist add", zap.String("offer_id", offer.ID), zap.Bool("added", added))

		status := http.StatusOK
		if added {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{
			"offerId": offer.ID,
			"count":   wishlist.Count(c.Request.Context()),
		})
	}
}

// HandleRemoveFromWishlist handles DELETE /v1/wishlist/:id
func HandleRemoveFromWishlist(wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed := wishlist.Remove(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, gin.H{
			"removed": removed,
			"count":   wishlist.Count(c.Request.Context()),
		})
	}
}

// HandleClearWishlist handles DELETE /v1/wishlist
func HandleClearWishlist(wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		wishlist.Clear(c.Request.Context())
		c.Status(http.StatusNoContent)
	}
}
