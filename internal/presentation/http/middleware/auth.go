package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/labomak/dashboard/internal/presentation/http/dto/response"
	"github.com/labomak/dashboard/pkg/utils"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey    = "user_id"
	UsernameKey  = "user_name"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization başlığı gerekli")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Authorization başlığı geçersiz")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Oturum geçersiz veya süresi dolmuş")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(UserRoleKey)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Bu işlem için yetkiniz yok")
		c.Abort()
	}
}

// UserID returns the authenticated kullanici_id, or 0.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}
