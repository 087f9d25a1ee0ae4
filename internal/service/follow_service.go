package service

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/repository"
)

// FollowService holds the shops the user follows
type FollowService struct {
	store  repository.Store
	logger *zap.Logger

	mu     sync.Mutex
	loaded bool
	shops  []domain.Shop
}

// NewFollowService creates a new follow service
func NewFollowService(store repository.Store, logger *zap.Logger) *FollowService {
	return &FollowService{
		store:  store,
		logger: logger,
	}
}

// Follow stores a copy of shop whose follower count is one higher than
// the count passed in. The copy is a point-in-time snapshot and is never
// reconciled with the shop's live count.
func (s *FollowService) Follow(ctx context.Context, shop domain.Shop) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if s.indexOf(shop.ID) >= 0 {
		return false
	}

	followed := shop
	stats := domain.ShopStats{}
	if shop.Stats != nil {
		stats = *shop.Stats
	}
	stats.FollowerCount++
	followed.Stats = &stats
	followed.Categories = slices.Clone(shop.Categories)

	s.shops = append(s.shops, followed)
	s.flush(ctx)

	s.logger.Debug("Shop followed",
		zap.String("shop_id", shop.ID),
		zap.Int("follower_count", stats.FollowerCount),
	)
	return true
}

func (s *FollowService) Unfollow(ctx context.Context, shopID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	i := s.indexOf(shopID)
	if i < 0 {
		return false
	}
	s.shops = slices.Delete(s.shops, i, i+1)
	s.flush(ctx)
	return true
}

func (s *FollowService) IsFollowing(ctx context.Context, shopID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	return s.indexOf(shopID) >= 0
}

func (s *FollowService) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	return len(s.shops)
}

// Shops returns the followed shop snapshots in follow order
func (s *FollowService) Shops(ctx context.Context) []domain.Shop {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	return append([]domain.Shop{}, s.shops...)
}

func (s *FollowService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shops = []domain.Shop{}
	s.loaded = true
	s.flush(ctx)
}

func (s *FollowService) indexOf(shopID string) int {
	return slices.IndexFunc(s.shops, func(sh domain.Shop) bool { return sh.ID == shopID })
}

func (s *FollowService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.shops = repository.ReadJSON(ctx, s.store, repository.KeyFollowedShops, []domain.Shop{}, s.logger)
	s.loaded = true
}

func (s *FollowService) flush(ctx context.Context) {
	if err := repository.WriteJSON(ctx, s.store, repository.KeyFollowedShops, s.shops); err != nil {
		s.logger.Error("Failed to persist followed shops", zap.Error(err))
	}
}
