package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Countdown отправляет в emit оставшееся до визита время каждые interval.
// Доступ как у GetByID. Возвращает nil, когда визит начался или ctx отменен.
func (s *Service) Countdown(ctx context.Context, bookingID string, actorID string, interval time.Duration, emit func(domain.CountdownTick) error) error {
	booking, err := s.getBooking(ctx, "Countdown", bookingID)
	if err != nil {
		return err
	}

	if !booking.OwnedBy(actorID) {
		if err := s.checkPermission(ctx, actorID, domain.ActionViewAnyBooking); err != nil {
			s.logger.Warn("Countdown: access denied for user=%s to booking id=%s", actorID, bookingID)
			return err
		}
	}

	if _, err := s.policy.AppointmentInstant(booking, s.timeProvider.Now()); err != nil {
		return ErrInvalidInstant
	}

	s.logger.Info("Countdown: started for booking id=%s, interval=%s", bookingID, interval)

	if err := s.policy.Countdown(ctx, booking, interval, s.timeProvider.Now, emit); err != nil {
		return fmt.Errorf("Countdown - emit: %w", err)
	}

	s.logger.Info("Countdown: finished for booking id=%s", bookingID)
	return nil
}
