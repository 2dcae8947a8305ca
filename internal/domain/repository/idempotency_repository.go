package repository

import (
	"context"

	"github.com/labomak/dashboard/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey returns (nil, nil) when the key was never stored or has expired.
	GetByKey(ctx context.Context, key string, userID int64) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) (int64, error)
}
