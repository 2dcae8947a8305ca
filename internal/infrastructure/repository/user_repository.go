package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/labomak/dashboard/internal/domain/entity"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "kullanici_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("kullanici_adi = ? OR LOWER(email) = LOWER(?)", login, login).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// MemoryUserRepository serves a fixed set of users, for offline runs and tests.
type MemoryUserRepository struct {
	users []entity.User
}

func NewMemoryUserRepository(users ...entity.User) *MemoryUserRepository {
	return &MemoryUserRepository{users: users}
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == login || (u.Email != "" && strings.EqualFold(u.Email, login)) {
			return &u, nil
		}
	}
	return nil, nil
}
