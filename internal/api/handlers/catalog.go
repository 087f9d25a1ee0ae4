package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jafarshop/dealmarket/internal/catalog"
	"github.com/jafarshop/dealmarket/internal/search"
	"github.com/jafarshop/dealmarket/internal/service"
)

const defaultRelatedLimit = 4

// HandleListOffers handles GET /v1/offers
func HandleListOffers(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		offers := cat.Offers()
		if q := c.Query("q"); strings.TrimSpace(q) != "" {
			offers = search.SearchOffers(offers, q)
		}
		if c.Query("featured") == "true" {
			offers = search.FeaturedOffers(offers, 0)
		}
		offers = search.FilterOffers(offers, offerFiltersFromQuery(c))

		c.JSON(http.StatusOK, gin.H{
			"offers": offers,
			"count":  len(offers),
		})
	}
}

// HandleGetOffer handles GET /v1/offers/:id
func HandleGetOffer(cat *catalog.Catalog, wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offer, ok := cat.Offer(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"offer":          offer,
			"inWishlist":     wishlist.Contains(c.Request.Context(), offer.ID),
			"shopOfferCount": len(cat.ShopOffers(offer.Vendor.Name)),
		})
	}
}

// HandleRelatedOffers handles GET /v1/offers/:id/related
func HandleRelatedOffers(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		offer, ok := cat.Offer(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
			return
		}

		related := search.RelatedOffers(cat.Offers(), offer, intQuery(c, "limit", defaultRelatedLimit))
		c.JSON(http.StatusOK, gin.H{"offers": related})
	}
}

// HandleCategories handles GET /v1/categories
func HandleCategories(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": search.CategoryCounts(cat.Offers())})
	}
}

// HandleListShops handles GET /v1/shops
func HandleListShops(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		shops := search.SearchShops(cat.Shops(), c.Query("q"), shopFiltersFromQuery(c))
		c.JSON(http.StatusOK, gin.H{
			"shops": shops,
			"count": len(shops),
		})
	}
}

// HandleGetShop handles GET /v1/shops/:id
func HandleGetShop(cat *catalog.Catalog, follow *service.FollowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, ok := cat.Shop(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"shop":        shop,
			"offers":      cat.ShopOffers(shop.Name),
			"isFollowing": follow.IsFollowing(c.Request.Context(), shop.ID),
		})
	}
}

// HandleSearch handles GET /v1/search
func HandleSearch(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := search.PerformSearch(cat.Offers(), cat.Shops(), c.Query("q"), shopFiltersFromQuery(c))
		c.JSON(http.StatusOK, result)
	}
}

// HandleSearchIntent handles GET /v1/search/intent
func HandleSearchIntent() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		c.JSON(http.StatusOK, gin.H{
			"query":    q,
			"intent":   search.DetectSearchIntent(q),
			"stripped": search.StripShopKeywords(q),
		})
	}
}
