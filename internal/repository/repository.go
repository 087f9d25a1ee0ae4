package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Keys under which the state stores persist their snapshots
const (
	KeyProfile       = "user-profile"
	KeyWishlist      = "wishlist"
	KeyFollowedShops = "followed-shops"
	KeyTickets       = "support-tickets"
	KeyAdmin         = "is-admin"
	KeyReviews       = "reviews"
)

// Store is a durable string-keyed value store. A missing key is reported
// as ok == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ReadJSON decodes the value stored at key into a T. Absent, unreadable
// and corrupt values all fall back to def; failures are logged.
func ReadJSON[T any](ctx context.Context, store Store, key string, def T, logger *zap.Logger) T {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("Failed to read persisted value", zap.String("key", key), zap.Error(err))
		return def
	}
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("Discarding corrupt persisted value", zap.String("key", key), zap.Error(err))
		return def
	}
	return v
}

// WriteJSON stores a JSON snapshot of v at key
func WriteJSON(ctx context.Context, store Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

type prefixedStore struct {
	Store
	prefix string
}

// Prefixed scopes every key of store under namespace, so several
// profiles can share one backend.
func Prefixed(store Store, namespace string) Store {
	if namespace == "" {
		return store
	}
	return &prefixedStore{Store: store, prefix: namespace + ":"}
}

func (s *prefixedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.Store.Get(ctx, s.prefix+key)
}

func (s *prefixedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.Store.Set(ctx, s.prefix+key, value)
}

func (s *prefixedStore) Delete(ctx context.Context, key string) error {
	return s.Store.Delete(ctx, s.prefix+key)
}
