package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/retry"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) ListByDates(ctx context.Context, dates []string) ([]*domain.Booking, error) {
	args := m.Called(ctx, dates)
	if b := args.Get(0); b != nil {
		return b.([]*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func newUseCase(repo *mockBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, retry.NoRetry{}, domain.DefaultPolicy(), logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_DefaultDays(t *testing.T) {
	now := time.Date(2025, time.December, 30, 15, 10, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	repo.On("ListByDates", mock.Anything, []string{"30 Dec", "31 Dec", "1 Jan"}).Return([]*domain.Booking{}, nil)

	resp, err := newUseCase(repo, now).Execute(context.Background(), &Request{})

	require.NoError(t, err)
	require.Len(t, resp.Days, DefaultDays)
	assert.Equal(t, "Tue", resp.Days[0].Weekday)
	assert.Equal(t, 2026, resp.Days[2].Start.Year())
	require.Len(t, resp.Days[0].Slots, len(domain.TimeSlots))

	for _, slot := range resp.Days[0].Slots {
		switch slot.Time {
		case "10:00", "15:00":
			assert.False(t, slot.Bookable, slot.Time)
		case "15:30", "21:00":
			assert.True(t, slot.Bookable, slot.Time)
		}
	}
	for _, slot := range resp.Days[1].Slots {
		assert.True(t, slot.Bookable)
	}
	repo.AssertExpectations(t)
}

func TestExecute_CountsConfirmedBookings(t *testing.T) {
	now := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2025, time.May, 1, 14, 0, 0, 0, time.UTC)
	lastYear := time.Date(2024, time.May, 1, 14, 0, 0, 0, time.UTC)

	repo := &mockBookingRepo{}
	repo.On("ListByDates", mock.Anything, []string{"1 May"}).Return([]*domain.Booking{
		{ID: "b-1", Date: "1 May", Time: "14:00", AppointmentAt: &slot, Status: domain.StatusConfirmed},
		{ID: "b-2", Date: "1 May", Time: "14:00", Status: ""},
		{ID: "b-3", Date: "1 May", Time: "14:00", AppointmentAt: &slot, Status: domain.StatusCancelled},
		{ID: "b-4", Date: "1 May", Time: "14:00", AppointmentAt: &lastYear, Status: domain.StatusConfirmed},
	}, nil)

	resp, err := newUseCase(repo, now).Execute(context.Background(), &Request{Days: 1})

	require.NoError(t, err)
	for _, s := range resp.Days[0].Slots {
		if s.Time == "14:00" {
			assert.Equal(t, 2, s.Booked)
		} else {
			assert.Zero(t, s.Booked, s.Time)
		}
	}
}

func TestExecute_InvalidDays(t *testing.T) {
	for _, days := range []int{-1, MaxDays + 1} {
		repo := &mockBookingRepo{}

		_, err := newUseCase(repo, time.Now()).Execute(context.Background(), &Request{Days: days})

		require.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "ListByDates", mock.Anything, mock.Anything)
	}
}

func TestExecute_StoreFailure(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("ListByDates", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := newUseCase(repo, time.Now()).Execute(context.Background(), &Request{Days: 2})

	require.ErrorIs(t, err, ErrInternal)
}

func TestBuildDays_UsesShopTimeZone(t *testing.T) {
	kl := time.FixedZone("MYT", 8*60*60)

	// 17:00 UTC это уже 01:00 следующего дня в Куала-Лумпуре
	now := time.Date(2025, time.March, 3, 17, 0, 0, 0, time.UTC)

	days := buildDays(now, 1, kl)

	require.Len(t, days, 1)
	assert.Equal(t, "4 Mar", days[0].Date)
	for _, s := range days[0].Slots {
		assert.True(t, s.Bookable, s.Time)
	}
}
