package repository

import (
	"context"
	"testing"
	"time"

	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryIdempotencyRepository()

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{Key: "k1", UserID: 1, ResponseCode: 201, ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{Key: "k2", UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)}))

	got, err := repo.GetByKey(ctx, "k1", 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	got, err = repo.GetByKey(ctx, "k1", 2)
	require.NoError(t, err)
	assert.Nil(t, got, "keys are scoped per user")

	got, err = repo.GetByKey(ctx, "k2", 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, repo.Create(ctx, &entity.IdempotencyKey{Key: "k1", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}))

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(entity.User{ID: 7, Username: "ayse", Email: "Ayse@Labomak.com"})

	u, err := repo.GetByLogin(ctx, "ayse@labomak.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(7), u.ID)

	u, err = repo.GetByID(ctx, 8)
	require.NoError(t, err)
	assert.Nil(t, u)
}
