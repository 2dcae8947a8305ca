package repository

import (
	"context"

	"github.com/labomak/dashboard/internal/domain/entity"
)

// ActivityRepository stores the mutation log shown on the dashboard.
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	// Recent returns the newest activities first.
	Recent(ctx context.Context, limit int) ([]entity.Activity, error)
}
