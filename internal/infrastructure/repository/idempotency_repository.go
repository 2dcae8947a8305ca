package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/labomak/dashboard/internal/domain/entity"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID int64) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("key = ? AND user_id = ? AND expires_at > ?", key, userID, time.Now()).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).Create(ikey).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.IdempotencyKey{})
	return result.RowsAffected, result.Error
}

// MemoryIdempotencyRepository keeps idempotency keys in process.
type MemoryIdempotencyRepository struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func NewMemoryIdempotencyRepository() *MemoryIdempotencyRepository {
	return &MemoryIdempotencyRepository{keys: map[string]entity.IdempotencyKey{}}
}

func memoryKey(key string, userID int64) string {
	return strconv.FormatInt(userID, 10) + "/" + key
}

func (r *MemoryIdempotencyRepository) GetByKey(ctx context.Context, key string, userID int64) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ikey, ok := r.keys[memoryKey(key, userID)]
	if !ok || ikey.IsExpired() {
		return nil, nil
	}
	return &ikey, nil
}

func (r *MemoryIdempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := memoryKey(ikey.Key, ikey.UserID)
	if existing, ok := r.keys[k]; ok && !existing.IsExpired() {
		return fmt.Errorf("idempotency key %q already stored", ikey.Key)
	}
	ikey.CreatedAt = time.Now()
	r.keys[k] = *ikey
	return nil
}

func (r *MemoryIdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k, ikey := range r.keys {
		if ikey.IsExpired() {
			delete(r.keys, k)
			n++
		}
	}
	return n, nil
}
