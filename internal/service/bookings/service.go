package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

const (
	msgCancelled = "Cancelled"

	refusalWindowClosed    = "window_closed"
	refusalAlreadyCanceled = "already_cancelled"
	refusalNotOwner        = "not_owner"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	txManager    TransactionManager
	retrier      Retrier
	metrics      Metrics
	policy       domain.Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	retrier Retrier,
	metrics Metrics,
	policy domain.Policy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		retrier:      retrier,
		metrics:      metrics,
		policy:       policy,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Policy возвращает политику отмены, с которой работает сервис
func (s *Service) Policy() domain.Policy {
	return s.policy
}

// GetByID получает бронирование по ID вместе с предпросмотром отмены.
// Владелец видит свою бронь, администратор - любую.
func (s *Service) GetByID(ctx context.Context, id string, actorID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actorID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.OwnedBy(actorID) {
		if err := s.checkPermission(ctx, actorID, domain.ActionViewAnyBooking); err != nil {
			s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", actorID, id)
			return nil, err
		}
	}

	now := s.timeProvider.Now()
	resp := models.FromDomainBooking(booking)
	if hours, err := s.policy.RemainingHours(booking, now); err == nil {
		resp.RemainingHours = ptr.Ptr(hours)
	}
	resp.Cancellable = ptr.Ptr(s.policy.IsCancellable(booking, now))

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return resp, nil
}

// ListForUser получает бронирования пользователя в порядке хранилища
func (s *Service) ListForUser(ctx context.Context, userID string, actorID string) (*models.BookingListResponse, error) {
	s.logger.Info("ListForUser: fetching bookings for user=%s by user=%s", userID, actorID)

	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if userID != actorID {
		if err := s.checkPermission(ctx, actorID, domain.ActionViewAllBookings); err != nil {
			s.logger.Warn("ListForUser: access denied for user=%s to bookings of user=%s", actorID, userID)
			return nil, err
		}
	}

	var bookings []*domain.Booking
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForUser: successfully fetched %d bookings for user=%s", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// ListAll получает все бронирования без фильтрации (только администратор)
func (s *Service) ListAll(ctx context.Context, actorID string) (*models.BookingListResponse, error) {
	if err := s.checkPermission(ctx, actorID, domain.ActionViewAllBookings); err != nil {
		s.logger.Warn("ListAll: access denied for user=%s", actorID)
		return nil, err
	}

	bookings, err := s.listAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// ListForAdmin получает бронирования для админки: актуальные и подходящие под фильтр статуса.
// Устаревшие записи только скрываются, в хранилище они остаются.
func (s *Service) ListForAdmin(ctx context.Context, req *models.AdminBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForAdmin: user=%s, status=%q, includeStale=%t", req.ActorID, req.Status, req.IncludeStale)

	filter, err := domain.ParseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("ListForAdmin: invalid status filter %q", req.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkPermission(ctx, req.ActorID, domain.ActionViewAllBookings); err != nil {
		s.logger.Warn("ListForAdmin: access denied for user=%s", req.ActorID)
		return nil, err
	}

	bookings, err := s.listAll(ctx)
	if err != nil {
		s.logger.Error("ListForAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListForAdmin - repository error: %v", ErrInternal, err)
	}

	var visible []*domain.Booking
	if req.IncludeStale {
		visible = make([]*domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if filter.Matches(b) {
				visible = append(visible, b)
			}
		}
	} else {
		visible = s.policy.FilterForAdmin(bookings, filter, s.timeProvider.Now())
	}

	s.logger.Info("ListForAdmin: %d of %d bookings visible", len(visible), len(bookings))
	return models.FromDomainBookingList(visible), nil
}

// Cancel отменяет бронирование владельца.
// Окно отмены проверяется здесь, внутри сериализуемой транзакции с блокировкой строки,
// а обновление выполняется только из статуса confirmed.
func (s *Service) Cancel(ctx context.Context, bookingID string, actorID string) (*models.CancelResult, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, actorID)

	var hoursBefore float64

	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
			if err != nil {
				return err
			}

			if !booking.OwnedBy(actorID) {
				return ErrAccessDenied
			}

			if booking.IsCancelled() {
				return ErrAlreadyCancelled
			}

			now := s.timeProvider.Now()
			hours, err := s.policy.RemainingHours(booking, now)
			if err != nil {
				return ErrInvalidInstant
			}

			if !s.policy.IsCancellable(booking, now) {
				hoursBefore = hours
				return ErrCancellationWindowClosed
			}

			if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusConfirmed, domain.StatusCancelled); err != nil {
				return err
			}

			hoursBefore = hours
			return nil
		})
	})

	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		case errors.Is(err, ErrAccessDenied):
			s.metrics.CancellationRefused(refusalNotOwner)
			s.logger.Warn("Cancel: user=%s does not own booking id=%s", actorID, bookingID)
			return nil, ErrAccessDenied
		case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, bookingRepo.ErrStatusConflict):
			s.metrics.CancellationRefused(refusalAlreadyCanceled)
			s.logger.Warn("Cancel: booking id=%s is already cancelled", bookingID)
			return nil, ErrAlreadyCancelled
		case errors.Is(err, ErrCancellationWindowClosed):
			s.metrics.CancellationRefused(refusalWindowClosed)
			s.logger.Warn("Cancel: booking id=%s is %.2fh away, window is %s", bookingID, hoursBefore, s.policy.CancellationWindow)
			return nil, ErrCancellationWindowClosed
		case errors.Is(err, ErrInvalidInstant):
			s.logger.Warn("Cancel: booking id=%s has no valid appointment time", bookingID)
			return nil, ErrInvalidInstant
		default:
			s.logger.Error("Cancel: failed to cancel booking id=%s: %v", bookingID, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.metrics.BookingCancelled()
	s.logger.Info("Cancel: successfully cancelled booking id=%s, %.2fh before appointment", bookingID, hoursBefore)

	return &models.CancelResult{
		Success:     true,
		Message:     msgCancelled,
		HoursBefore: hoursBefore,
	}, nil
}

// Delete физически удаляет бронирование (только администратор)
func (s *Service) Delete(ctx context.Context, bookingID string, actorID string) error {
	s.logger.Info("Delete: deleting booking id=%s by user=%s", bookingID, actorID)

	if err := s.checkPermission(ctx, actorID, domain.ActionDeleteBooking); err != nil {
		s.logger.Warn("Delete: access denied for user=%s", actorID)
		return err
	}

	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		return s.bookingRepo.Delete(ctx, bookingID)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%s", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id string) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) listAll(ctx context.Context) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.List(ctx)
		return err
	})
	return bookings, err
}

// checkPermission проверяет роль пользователя через справочник.
// Пользователь без профиля не получает никаких прав.
func (s *Service) checkPermission(ctx context.Context, actorID string, action domain.Action) error {
	var actor *domain.User
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		actor, err = s.userRepo.GetByID(ctx, actorID)
		return err
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrAccessDenied
		}
		s.logger.Error("checkPermission: failed to get user=%s: %v", actorID, err)
		return fmt.Errorf("%w: checkPermission - failed to get user: %v", ErrInternal, err)
	}

	if !actor.Can(action) {
		return ErrAccessDenied
	}

	return nil
}
