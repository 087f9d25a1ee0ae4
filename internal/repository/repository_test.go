package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jafarshop/dealmarket/internal/repository/memory"
)

type brokenStore struct{ memory.Store }

func (*brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("quota exceeded")
}

func TestReadJSON(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	t.Run("absent returns default silently", func(t *testing.T) {
		store := memory.NewStore()
		got := ReadJSON(ctx, store, KeyWishlist, []string{"fallback"}, logger)

		assert.Equal(t, []string{"fallback"}, got)
		assert.Zero(t, logs.Len())
	})

	t.Run("round trip", func(t *testing.T) {
		store := memory.NewStore()
		require.NoError(t, WriteJSON(ctx, store, KeyWishlist, []string{"a", "b"}))

		assert.Equal(t, []string{"a", "b"}, ReadJSON(ctx, store, KeyWishlist, []string(nil), logger))
	})

	t.Run("corrupt value falls back and logs", func(t *testing.T) {
		store := memory.NewStore()
		require.NoError(t, store.Set(ctx, KeyTickets, []byte("{not json")))

		got := ReadJSON(ctx, store, KeyTickets, 42, logger)
		assert.Equal(t, 42, got)
		assert.Equal(t, 1, logs.FilterMessage("Discarding corrupt persisted value").Len())
	})

	t.Run("unreadable store falls back and logs", func(t *testing.T) {
		got := ReadJSON(ctx, &brokenStore{}, KeyProfile, "guest", logger)
		assert.Equal(t, "guest", got)
		assert.Equal(t, 1, logs.FilterMessage("Failed to read persisted value").Len())
	})
}

func TestPrefixed(t *testing.T) {
	ctx := context.Background()
	base := memory.NewStore()

	alice := Prefixed(base, "alice")
	bob := Prefixed(base, "bob")

	require.NoError(t, alice.Set(ctx, KeyAdmin, []byte("true")))

	_, ok, err := bob.Get(ctx, KeyAdmin)
	require.NoError(t, err)
	assert.False(t, ok, "namespaces must not see each other's keys")

	raw, ok, err := base.Get(ctx, "alice:"+KeyAdmin)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", string(raw))

	require.NoError(t, alice.Delete(ctx, KeyAdmin))
	_, ok, _ = base.Get(ctx, "alice:"+KeyAdmin)
	assert.False(t, ok)

	assert.Same(t, base, Prefixed(base, ""))
}
