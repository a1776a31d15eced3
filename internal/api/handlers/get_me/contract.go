package get_me

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/users/models"
)

type UserService interface {
	Me(ctx context.Context, userID string) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
