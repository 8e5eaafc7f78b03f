package dto

import (
	"github.com/samber/lo"
	"github.com/thereayou/messenger/internal/models"
)

type UserResponse struct {
	ID          uint64  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Email       *string `json:"email"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
	}
}

// NewUserList никогда не возвращает nil, чтобы в JSON был [] а не null
func NewUserList(users []models.User) []UserResponse {
	return lo.Map(users, func(u models.User, _ int) UserResponse {
		return NewUserResponse(u)
	})
}
