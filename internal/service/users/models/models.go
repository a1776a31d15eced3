package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// RegisterRequest данные профиля при регистрации
type RegisterRequest struct {
	Email    string  `json:"email" validate:"omitempty,max=254"` // Используется, если identity provider не передал email
	Telegram *string `json:"telegram,omitempty" validate:"omitempty,max=64"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	College  *string `json:"college,omitempty"`
}

// UpdateRoleRequest запрос на смену роли
type UpdateRoleRequest struct {
	ActorID  string
	TargetID string
	Role     string
}

// UserResponse ответ с данными пользователя
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Telegram  *string   `json:"telegram,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	College   *string   `json:"college,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserListResponse ответ со списком пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Telegram:  u.Telegram,
		Phone:     u.Phone,
		College:   u.College,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

// FromDomainUserList конвертирует список domain моделей в DTO
func FromDomainUserList(users []*domain.User) *UserListResponse {
	resp := &UserListResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		if userResp := FromDomainUser(u); userResp != nil {
			resp.Users = append(resp.Users, *userResp)
		}
	}
	return resp
}
