package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/api/handlers"
	"github.com/jafarshop/dealmarket/internal/api/middleware"
	"github.com/jafarshop/dealmarket/internal/catalog"
	"github.com/jafarshop/dealmarket/internal/config"
	"github.com/jafarshop/dealmarket/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svcs *service.Services, cat *catalog.Catalog, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		// Catalog and search
		v1.GET("/offers", handlers.HandleListOffers(cat))
		v1.GET("/offers/:id", handlers.HandleGetOffer(cat, svcs.Wishlist))
		v1.GET("/offers/:id/related", handlers.HandleRelatedOffers(cat))
		v1.GET("/categories", handlers.HandleCategories(cat))
		v1.GET("/shops", handlers.HandleListShops(cat))
		v1.GET("/shops/:id", handlers.HandleGetShop(cat, svcs.Follow))
		v1.GET("/search", handlers.HandleSearch(cat))
		v1.GET("/search/intent", handlers.HandleSearchIntent())

		// Wishlist
		v1.GET("/wishlist", handlers.HandleGetWishlist(svcs.Wishlist))
		v1.POST("/wishlist", handlers.HandleAddToWishlist(cat, svcs.Wishlist, logger))
		v1.DELETE("/wishlist", handlers.HandleClearWishlist(svcs.Wishlist))
		v1.DELETE("/wishlist/:id", handlers.HandleRemoveFromWishlist(svcs.Wishlist))

		// Followed shops
		v1.GET("/following", handlers.HandleGetFollowing(svcs.Follow))
		v1.POST("/following", handlers.HandleFollowShop(cat, svcs.Follow))
		v1.DELETE("/following", handlers.HandleClearFollowing(svcs.Follow))
		v1.DELETE("/following/:id", handlers.HandleUnfollowShop(svcs.Follow))

		// Reviews
		v1.GET("/subjects/:id/reviews", handlers.HandleListReviews(svcs.Reviews))
		v1.POST("/subjects/:id/reviews", handlers.HandleSubmitReview(cat, svcs.Reviews, svcs.Profile, logger))
		v1.GET("/subjects/:id/review-stats", handlers.HandleReviewStats(svcs.Reviews))
		v1.POST("/reviews/:id/helpful", handlers.HandleMarkHelpful(svcs.Reviews))

		// Profile
		v1.GET("/profile", handlers.HandleGetProfile(svcs.Profile))
		v1.PUT("/profile", handlers.HandleLogin(svcs.Profile, logger))
		v1.PATCH("/profile", handlers.HandleUpdateProfile(svcs.Profile))
		v1.DELETE("/profile", handlers.HandleLogout(svcs.Profile))
		v1.GET("/profile/reviews", handlers.HandleMyReviews(svcs.Reviews, svcs.Profile))

		// Support tickets
		v1.GET("/tickets", handlers.HandleListMyTickets(svcs.Tickets, svcs.Profile))
		v1.POST("/tickets", handlers.HandleCreateTicket(svcs.Tickets, svcs.Profile, logger))
		v1.GET("/tickets/:id", handlers.HandleGetTicket(svcs.Tickets, svcs.Profile))
		v1.PATCH("/tickets/:id", handlers.HandlePatchTicket(svcs.Tickets, svcs.Profile, logger))
		v1.DELETE("/tickets/:id", handlers.HandleDeleteTicket(svcs.Tickets, svcs.Profile, logger))
		v1.POST("/tickets/:id/messages", handlers.HandlePostMessage(svcs.Tickets, svcs.Profile, logger))

		// Admin session is open; everything else under /admin needs the flag
		v1.POST("/admin/session", handlers.HandleEnableAdmin(svcs.Profile, logger))

		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminMiddleware(svcs.Profile, logger))
		{
			adminRoutes.DELETE("/session", handlers.HandleDisableAdmin(svcs.Profile))
			adminRoutes.GET("/tickets", handlers.HandleListTickets(svcs.Tickets))
			adminRoutes.GET("/tickets/stats", handlers.HandleTicketStats(svcs.Tickets))
			adminRoutes.POST("/tickets/:id/status", handlers.HandleUpdateTicketStatus(svcs.Tickets, logger))
			adminRoutes.POST("/tickets/:id/assign", handlers.HandleAssignTicket(svcs.Tickets, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
