package register_user

import (
	"github.com/m04kA/SMC-BarberBooking/internal/service/users/models"
)

// RegisterUserRequest HTTP request model, все поля опциональны
type RegisterUserRequest struct {
	Email    string  `json:"email,omitempty"`
	Telegram *string `json:"telegram,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	College  *string `json:"college,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RegisterUserRequest) ToServiceRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Email:    r.Email,
		Telegram: r.Telegram,
		Phone:    r.Phone,
		College:  r.College,
	}
}
