package style_recommendation

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/stylist"
)

type StylistService interface {
	Recommend(ctx context.Context, req *stylist.Request) (*stylist.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
