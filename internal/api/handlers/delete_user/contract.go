package delete_user

import (
	"context"
)

type UserService interface {
	Delete(ctx context.Context, actorID, targetID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
