package service

import (
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/catalog"
	"github.com/jafarshop/dealmarket/internal/config"
	"github.com/jafarshop/dealmarket/internal/repository"
)

// Services groups the stateful stores of one session
type Services struct {
	Wishlist *WishlistService
	Follow   *FollowService
	Reviews  *ReviewService
	Tickets  *TicketService
	Profile  *ProfileService
}

// NewServices builds every store on top of a single persisted store
func NewServices(store repository.Store, cat *catalog.Catalog, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Wishlist: NewWishlistService(store, logger.Named("wishlist")),
		Follow:   NewFollowService(store, logger.Named("follow")),
		Reviews:  NewReviewService(store, cfg.Reviews.SubmitDelay, logger.Named("reviews")),
		Tickets:  NewTicketService(store, cat.Tickets(), logger.Named("tickets")),
		Profile:  NewProfileService(store, cfg.Admin.PasscodeHash, logger.Named("profile")),
	}
}
