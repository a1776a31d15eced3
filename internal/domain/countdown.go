package domain

import (
	"context"
	"time"
)

// CountdownTick одно значение обратного отсчета до визита
type CountdownTick struct {
	RemainingHours float64
	Started        bool // Визит уже начался, отсчет завершен
}

// Countdown пересчитывает RemainingHours каждые interval и передает значение в emit.
// Первое значение отправляется сразу. Отсчет останавливается при отмене ctx,
// ошибке emit или после отправки значения с Started = true.
func (p Policy) Countdown(ctx context.Context, b *Booking, interval time.Duration, now func() time.Time, emit func(CountdownTick) error) error {
	if interval <= 0 {
		interval = time.Second
	}

	instant, err := p.AppointmentInstant(b, now())
	if err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		remaining := instant.Sub(now()).Hours()
		tick := CountdownTick{RemainingHours: remaining, Started: remaining <= 0}
		if err := emit(tick); err != nil {
			return err
		}
		if tick.Started {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
