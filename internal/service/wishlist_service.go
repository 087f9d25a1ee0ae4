package service

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/repository"
)

// WishlistService holds the offers the user saved, mirrored to the
// wishlist key after every change
type WishlistService struct {
	store  repository.Store
	logger *zap.Logger

	mu     sync.Mutex
	loaded bool
	items  []domain.Offer
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(store repository.Store, logger *zap.Logger) *WishlistService {
	return &WishlistService{
		store:  store,
		logger: logger,
	}
}

// Add saves a snapshot of offer. Adding an offer that is already saved
// is a no-op; the return value reports whether anything changed.
func (s *WishlistService) Add(ctx context.Context, offer domain.Offer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if s.indexOf(offer.ID) >= 0 {
		return false
	}
	s.items = append(s.items, offer)
	s.flush(ctx)
	return true
}

// Remove drops the offer with the given id, if present
func (s *WishlistService) Remove(ctx context.Context, offerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	i := s.indexOf(offerID)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.flush(ctx)
	return true
}

func (s *WishlistService) Contains(ctx context.Context, offerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	return s.indexOf(offerID) >= 0
}

func (s *WishlistService) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	return len(s.items)
}

// Items returns the saved offers in the order they were added
func (s *WishlistService) Items(ctx context.Context) []domain.Offer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	return append([]domain.Offer{}, s.items...)
}

// Clear empties the wishlist and persists the empty state
func (s *WishlistService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []domain.Offer{}
	s.loaded = true
	s.flush(ctx)
}

func (s *WishlistService) indexOf(offerID string) int {
	return slices.IndexFunc(s.items, func(o domain.Offer) bool { return o.ID == offerID })
}

func (s *WishlistService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.items = repository.ReadJSON(ctx, s.store, repository.KeyWishlist, []domain.Offer{}, s.logger)
	s.loaded = true
}

// flush writes the current snapshot. Failures are logged; the in-memory
// list stays authoritative for this session.
func (s *WishlistService) flush(ctx context.Context) {
	if err := repository.WriteJSON(ctx, s.store, repository.KeyWishlist, s.items); err != nil {
		s.logger.Error("Failed to persist wishlist", zap.Error(err))
	}
}
