package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/user"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	retrier      Retrier
	metrics      Metrics
	policy       domain.Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	retrier Retrier,
	metrics Metrics,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		retrier:      retrier,
		metrics:      metrics,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Пересечения слотов не проверяются: несколько клиентов могут записаться на одно время.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, service=%s, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Абсолютное время визита с учетом перехода через год
	appointmentAt, err := uc.policy.ResolveAppointmentInstant(req.Date, req.Time, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: cannot resolve date=%q time=%q: %v", req.Date, req.Time, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}
	if !appointmentAt.After(now) {
		uc.logger.Warn("CreateBooking: appointment %s is not in the future", appointmentAt)
		return nil, ErrAppointmentInPast
	}

	// 3. Снимок данных пользователя на момент записи
	var user *domain.User
	err = uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		user, err = uc.userRepo.GetByID(ctx, req.UserID)
		return err
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%s has no profile", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if !user.Can(domain.ActionCreateBooking) {
		uc.logger.Warn("CreateBooking: user id=%s with role %s cannot book", user.ID, user.Role)
		return nil, ErrForbidden
	}

	service, _ := domain.FindService(req.ServiceID)

	// "Dec 25", "25 December" и "25 dec" хранятся как "25 Dec"
	date := appointmentAt.In(uc.policy.TimeZone()).Format(domain.DateFormat)

	booking := &domain.Booking{
		UserID:        user.ID,
		UserName:      user.Name,
		UserTelegram:  user.Telegram,
		UserCollege:   user.College,
		ServiceID:     service.ID,
		Date:          date,
		Time:          req.Time,
		AppointmentAt: &appointmentAt,
		Status:        domain.StatusConfirmed,
		CreatedAt:     now,
	}

	// 4. Сохраняем бронирование. ID назначается при первой попытке и переиспользуется при повторах.
	var created *domain.Booking
	err = uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = uc.bookingRepo.Create(ctx, booking)
		return err
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.metrics.BookingCreated(service.ID)
	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	return &Response{
		ID:            created.ID,
		UserID:        created.UserID,
		UserName:      created.UserName,
		ServiceID:     created.ServiceID,
		Date:          created.Date,
		Time:          created.Time,
		Status:        string(created.Status),
		UserTelegram:  created.UserTelegram,
		UserCollege:   created.UserCollege,
		ServiceName:   service.Name,
		ServicePrice:  service.Price,
		AppointmentAt: appointmentAt,
		CreatedAt:     created.CreatedAt,
	}, nil
}
