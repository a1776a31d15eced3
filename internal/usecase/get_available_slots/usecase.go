package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// UseCase use case для получения сетки слотов на ближайшие дни
type UseCase struct {
	bookingRepo  BookingRepository
	retrier      Retrier
	policy       domain.Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	retrier Retrier,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		retrier:      retrier,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов.
// Занятость слота справочная: запись на занятый слот не запрещается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		req = &Request{}
	}

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Сетка дней в часовом поясе барбершопа
	days := buildDays(now, req.Days, uc.policy.TimeZone())

	// 3. Подтвержденные записи на эти дни
	var bookings []*domain.Booking
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		bookings, err = uc.bookingRepo.ListByDates(ctx, dateLabels(days))
		return err
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	countBooked(days, bookings, uc.policy, now)

	uc.logger.Info("GetAvailableSlots: generated %d days starting %s", len(days), days[0].Date)

	return &Response{Days: days}, nil
}
