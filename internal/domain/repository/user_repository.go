package repository

import (
	"context"

	"github.com/labomak/dashboard/internal/domain/entity"
)

// UserRepository looks up kullanici rows for authentication.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByLogin matches either kullanici_adi or email.
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
}
