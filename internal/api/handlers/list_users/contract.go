package list_users

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/users/models"
)

type UserService interface {
	List(ctx context.Context, actorID string) (*models.UserListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
