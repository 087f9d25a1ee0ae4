package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/catalog"
	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/service"
)

// SubmitReviewRequest represents a new review payload
type SubmitReviewRequest struct {
	SubjectType domain.SubjectType    `json:"subjectType" binding:"required"`
	Rating      int                   `json:"rating" binding:"required"`
	Title       string                `json:"title"`
	Comment     string                `json:"comment"`
	Photos      []service.PhotoUpload `json:"photos"`
}

// HandleListReviews handles GET /v1/subjects/:id/reviews
func HandleListReviews(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := reviews.GetReviews(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, gin.H{
			"reviews": list,
			"count":   len(list),
		})
	}
}

// HandleReviewStats handles GET /v1/subjects/:id/review-stats
func HandleReviewStats(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, reviews.GetStats(c.Request.Context(), c.Param("id")))
	}
}

// HandleSubmitReview handles POST /v1/subjects/:id/reviews
func HandleSubmitReview(
	cat *catalog.Catalog,
	reviews *service.ReviewService,
	profile *service.ProfileService,
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user := profile.Get(ctx)
		if !user.IsLoggedIn() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		var req SubmitReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		subjectID := c.Param("id")
		if !subjectExists(cat, req.SubjectType, subjectID) {
			c.JSON(http.StatusNotFound, gin.H{"error": string(req.SubjectType) + " not found"})
			return
		}

		review, err := reviews.SubmitReview(ctx, subjectID, req.SubjectType, service.ReviewInput{
			UserID:   user.ID,
			UserName: user.Name,
			Rating:   req.Rating,
			Title:    req.Title,
			Comment:  req.Comment,
			Photos:   req.Photos,
		})
		if err != nil {
			respondError(c, logger, err, "submit review")
			return
		}

		c.JSON(http.StatusCreated, review)
	}
}

// HandleMarkHelpful handles POST /v1/reviews/:id/helpful
func HandleMarkHelpful(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !reviews.MarkHelpful(c.Request.Context(), c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleMyReviews handles GET /v1/profile/reviews
func HandleMyReviews(reviews *service.ReviewService, profile *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := profile.Get(c.Request.Context())
		if !user.IsLoggedIn() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews.UserReviews(c.Request.Context(), user.ID)})
	}
}

func subjectExists(cat *catalog.Catalog, subjectType domain.SubjectType, id string) bool {
	switch subjectType {
	case domain.SubjectTypeOffer:
		_, ok := cat.Offer(id)
		return ok
	case domain.SubjectTypeShop:
		_, ok := cat.Shop(id)
		return ok
	default:
		// unknown types are rejected by the review service
		return true
	}
}
