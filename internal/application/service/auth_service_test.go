package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/labomak/dashboard/pkg/apperror"
	"github.com/labomak/dashboard/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users []entity.User
	err   error
}

func (r *stubUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == login || strings.EqualFold(u.Email, login) {
			return &u, nil
		}
	}
	return nil, nil
}

func newAuthService(t *testing.T) (*AuthService, *stubUserRepo, *utils.JWTManager) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("gizli123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &stubUserRepo{users: []entity.User{
		{ID: 1, Username: "ayse", Email: "ayse@labomak.com", PasswordHash: string(hash), Role: "admin", Active: true},
		{ID: 2, Username: "eski", PasswordHash: string(hash), Active: false},
	}}
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(repo, jwt), repo, jwt
}

func TestLogin(t *testing.T) {
	svc, _, jwt := newAuthService(t)

	for _, login := range []string{"ayse", "AYSE@labomak.com"} {
		out, err := svc.Login(context.Background(), &LoginInput{Login: login, Password: "gizli123"})
		require.NoError(t, err, login)
		assert.Equal(t, int64(1), out.User.ID)
		assert.Empty(t, out.User.PasswordHash)

		claims, err := jwt.ValidateAccessToken(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(1), claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, repo, _ := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input LoginInput
		want  *apperror.AppError
	}{
		{"wrong password", LoginInput{Login: "ayse", Password: "yanlis"}, apperror.ErrInvalidCredentials},
		{"unknown user", LoginInput{Login: "mehmet", Password: "gizli123"}, apperror.ErrInvalidCredentials},
		{"empty login", LoginInput{Password: "gizli123"}, apperror.ErrInvalidCredentials},
		{"inactive", LoginInput{Login: "eski", Password: "gizli123"}, apperror.ErrInactiveUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	repo.err = errors.New("connection refused")
	_, err := svc.Login(ctx, &LoginInput{Login: "ayse", Password: "gizli123"})
	assert.EqualError(t, err, "connection refused")
}

func TestGetCurrentUser(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.GetCurrentUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ayse", u.Username)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.GetCurrentUser(ctx, 2)
	assert.ErrorIs(t, err, apperror.ErrInactiveUser)
	_, err = svc.GetCurrentUser(ctx, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
