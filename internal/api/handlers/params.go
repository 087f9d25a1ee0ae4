package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/pkg/errors"
)

// offerFiltersFromQuery reads offer filters from the query string.
// Malformed numbers are ignored rather than rejected.
func offerFiltersFromQuery(c *gin.Context) domain.FilterOptions {
	filters := domain.FilterOptions{
		Category: c.Query("category"),
		Location: c.Query("location"),
		SortBy:   c.Query("sortBy"),
	}

	if rating, ok := floatQuery(c, "rating"); ok {
		filters.Rating = rating
	}

	minPrice, hasMin := floatQuery(c, "minPrice")
	maxPrice, hasMax := floatQuery(c, "maxPrice")
	if hasMin || hasMax {
		r := domain.PriceRange{Min: 0, Max: math.MaxFloat64}
		if hasMin {
			r.Min = minPrice
		}
		if hasMax {
			r.Max = maxPrice
		}
		filters.PriceRange = &r
	}

	return filters
}

func shopFiltersFromQuery(c *gin.Context) domain.ShopFilters {
	filters := domain.ShopFilters{
		City:         c.Query("city"),
		State:        c.Query("state"),
		Category:     c.Query("category"),
		BusinessType: domain.BusinessType(c.Query("businessType")),
		SortBy:       c.Query("sortBy"),
	}

	if rating, ok := floatQuery(c, "rating"); ok {
		filters.Rating = rating
	}
	if raw := c.Query("verified"); raw != "" {
		if verified, err := strconv.ParseBool(raw); err == nil {
			filters.Verified = &verified
		}
	}

	return filters
}

func floatQuery(c *gin.Context, key string) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// respondError maps service errors onto HTTP statuses
func respondError(c *gin.Context, logger *zap.Logger, err error, action string) {
	switch e := err.(type) {
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": e.Error(),
		})
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
	default:
		logger.Error("Failed to "+action, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}
