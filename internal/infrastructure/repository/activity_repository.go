package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/labomak/dashboard/internal/domain/entity"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"gorm.io/gorm"
)

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) domainRepo.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) Recent(ctx context.Context, limit int) ([]entity.Activity, error) {
	var activities []entity.Activity
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// MemoryActivityRepository is the in-process activity log.
type MemoryActivityRepository struct {
	mu         sync.Mutex
	activities []entity.Activity
	now        func() time.Time
}

func NewMemoryActivityRepository() *MemoryActivityRepository {
	return &MemoryActivityRepository{now: time.Now}
}

func (r *MemoryActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity.ID = int64(len(r.activities) + 1)
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = r.now()
	}
	r.activities = append(r.activities, *activity)
	return nil
}

func (r *MemoryActivityRepository) Recent(ctx context.Context, limit int) ([]entity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]entity.Activity(nil), r.activities...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
