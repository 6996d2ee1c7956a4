package response

import (
	"time"

	"complaint-desk/internal/data/entity"
)

type AuthResponse struct {
	UserID     string          `json:"user_id"`
	Token      string          `json:"token"`
	ExpiresAt  time.Time       `json:"expires_at"`
	Email      string          `json:"email"`
	Username   string          `json:"username"`
	Role       entity.UserRole `json:"role"`
	IsVerified bool            `json:"is_verified"`
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) *AuthResponse {
	return &AuthResponse{
		UserID:     user.ID.String(),
		Token:      token,
		ExpiresAt:  expiresAt,
		Email:      user.Email,
		Username:   user.Username,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	}
}
