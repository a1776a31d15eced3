package booking_countdown

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

type BookingService interface {
	Countdown(ctx context.Context, bookingID string, actorID string, interval time.Duration, emit func(domain.CountdownTick) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
