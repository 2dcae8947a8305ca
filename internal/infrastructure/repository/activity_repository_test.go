package repository

import (
	"context"
	"testing"
	"time"

	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryActivityRepositoryRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryActivityRepository()
	base := time.Date(2025, 9, 8, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		require.NoError(t, repo.Create(ctx, &entity.Activity{
			Table:     "urun_listesi",
			Action:    entity.ActivityCreated,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := repo.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, int64(7), recent[0].ID)
	assert.Equal(t, int64(3), recent[4].ID)
}
