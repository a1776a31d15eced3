package booking_countdown

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// TickEvent данные одного SSE события
type TickEvent struct {
	RemainingHours float64 `json:"remainingHours"`
	Started        bool    `json:"started"`
}

func FromDomainTick(tick domain.CountdownTick) TickEvent {
	return TickEvent{
		RemainingHours: tick.RemainingHours,
		Started:        tick.Started,
	}
}
