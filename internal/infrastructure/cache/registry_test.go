package cache

import (
	"context"
	"testing"
	"time"

	"github.com/labomak/dashboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOfferNumberRegistry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC)
	r := NewMemoryOfferNumberRegistry(time.Hour)
	r.now = func() time.Time { return now }

	ok, err := r.Reserve(ctx, "TK20250908047")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Reserve(ctx, "TK20250908047")
	require.NoError(t, err)
	assert.False(t, ok, "second reservation of the same number")

	now = now.Add(2 * time.Hour)
	ok, err = r.Reserve(ctx, "TK20250908047")
	require.NoError(t, err)
	assert.True(t, ok, "expired reservation is free again")

	require.NoError(t, r.Release(ctx, "TK20250908047"))
	ok, err = r.Reserve(ctx, "TK20250908047")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewOfferNumberRegistryFallsBackWithoutAddr(t *testing.T) {
	registry := NewOfferNumberRegistry(context.Background(), config.RedisConfig{})
	assert.IsType(t, &MemoryOfferNumberRegistry{}, registry)
}

func TestNewOfferNumberRegistryFallsBackWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	registry := NewOfferNumberRegistry(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.IsType(t, &MemoryOfferNumberRegistry{}, registry)
}
