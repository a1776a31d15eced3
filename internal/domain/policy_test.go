package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func legacyBooking(date, clock string, status BookingStatus) *Booking {
	return &Booking{ID: "b-1", UserID: "u-1", Date: date, Time: clock, Status: status}
}

func TestComputeAppointmentInstant(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		clock   string
		want    time.Time
		wantErr bool
	}{
		{name: "short month", date: "25 Dec", clock: "14:00", want: at(2025, time.December, 25, 14, 0)},
		{name: "long month", date: "3 January", clock: "09:30", want: at(2025, time.January, 3, 9, 30)},
		{name: "month first", date: "Dec 25", clock: "20:30", want: at(2025, time.December, 25, 20, 30)},
		{name: "surrounding spaces", date: " 1 Mar ", clock: " 10:00", want: at(2025, time.March, 1, 10, 0)},
		{name: "empty date", date: "", clock: "14:00", wantErr: true},
		{name: "empty time", date: "25 Dec", clock: "", wantErr: true},
		{name: "garbage", date: "someday", clock: "noon", wantErr: true},
		{name: "impossible day", date: "31 Feb", clock: "10:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeAppointmentInstant(tt.date, tt.clock, 2025, time.UTC)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInstant)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestComputeAppointmentInstant_UsesLocation(t *testing.T) {
	loc := time.FixedZone("MYT", 8*60*60)

	got, err := ComputeAppointmentInstant("25 Dec", "14:00", 2025, loc)

	require.NoError(t, err)
	assert.True(t, at(2025, time.December, 25, 6, 0).Equal(got))
}

func TestPolicy_RemainingHours(t *testing.T) {
	p := DefaultPolicy()
	b := legacyBooking("25 Dec", "14:00", StatusConfirmed)

	t.Run("one hour before", func(t *testing.T) {
		hours, err := p.RemainingHours(b, at(2025, time.December, 25, 13, 0))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, hours, 1e-9)
	})

	t.Run("thirty hours before", func(t *testing.T) {
		hours, err := p.RemainingHours(b, at(2025, time.December, 24, 8, 0))
		require.NoError(t, err)
		assert.InDelta(t, 30.0, hours, 1e-9)
	})

	t.Run("negative once started", func(t *testing.T) {
		hours, err := p.RemainingHours(b, at(2025, time.December, 25, 16, 30))
		require.NoError(t, err)
		assert.InDelta(t, -2.5, hours, 1e-9)
	})

	t.Run("invalid instant", func(t *testing.T) {
		_, err := p.RemainingHours(legacyBooking("?", "?", StatusConfirmed), at(2025, time.December, 24, 8, 0))
		require.ErrorIs(t, err, ErrInvalidInstant)
	})
}

func TestPolicy_IsCancellable(t *testing.T) {
	p := DefaultPolicy()
	appointment := at(2025, time.December, 25, 14, 0)
	stored := func(status BookingStatus) *Booking {
		b := legacyBooking("25 Dec", "14:00", status)
		b.AppointmentAt = &appointment
		return b
	}

	tests := []struct {
		name    string
		booking *Booking
		now     time.Time
		want    bool
	}{
		{name: "one hour before", booking: legacyBooking("25 Dec", "14:00", StatusConfirmed), now: at(2025, time.December, 25, 13, 0), want: false},
		{name: "thirty hours before", booking: legacyBooking("25 Dec", "14:00", StatusConfirmed), now: at(2025, time.December, 24, 8, 0), want: true},
		{name: "exactly at window", booking: stored(StatusConfirmed), now: appointment.Add(-3 * time.Hour), want: true},
		{name: "just inside window", booking: stored(StatusConfirmed), now: appointment.Add(-3*time.Hour + time.Second), want: false},
		{name: "already started", booking: stored(StatusConfirmed), now: appointment.Add(time.Hour), want: false},
		{name: "cancelled far in advance", booking: stored(StatusCancelled), now: appointment.Add(-72 * time.Hour), want: false},
		{name: "missing status", booking: stored(""), now: appointment.Add(-72 * time.Hour), want: false},
		{name: "invalid instant", booking: legacyBooking("soon", "later", StatusConfirmed), now: appointment, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsCancellable(tt.booking, tt.now))
		})
	}
}

func TestPolicy_IsCancellable_CustomWindow(t *testing.T) {
	p := NewPolicy(6, 24, time.UTC)
	b := legacyBooking("25 Dec", "14:00", StatusConfirmed)

	assert.False(t, p.IsCancellable(b, at(2025, time.December, 25, 9, 0)))
	assert.True(t, p.IsCancellable(b, at(2025, time.December, 25, 8, 0)))
}

func TestPolicy_IsRelevantForAdmin(t *testing.T) {
	p := DefaultPolicy()
	appointment := at(2025, time.March, 10, 14, 0)
	b := legacyBooking("10 Mar", "14:00", StatusConfirmed)
	b.AppointmentAt = &appointment

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "future", now: appointment.Add(-48 * time.Hour), want: true},
		{name: "started an hour ago", now: appointment.Add(time.Hour), want: true},
		{name: "yesterday within window", now: appointment.Add(23 * time.Hour), want: true},
		{name: "exactly at staleness window", now: appointment.Add(24 * time.Hour), want: false},
		{name: "beyond window", now: appointment.Add(25 * time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsRelevantForAdmin(b, tt.now))
		})
	}

	t.Run("invalid instant is always shown", func(t *testing.T) {
		assert.True(t, p.IsRelevantForAdmin(legacyBooking("", "", StatusConfirmed), appointment))
	})
}

func TestPolicy_FilterForAdmin(t *testing.T) {
	p := DefaultPolicy()
	now := at(2025, time.June, 15, 12, 0)

	future := legacyBooking("20 Jun", "10:00", StatusConfirmed)
	future.ID = "future"
	yesterday := legacyBooking("14 Jun", "15:00", StatusCancelled)
	yesterday.ID = "yesterday"
	stale := legacyBooking("10 Jun", "10:00", StatusConfirmed)
	stale.ID = "stale"
	legacy := legacyBooking("16 Jun", "11:00", "")
	legacy.ID = "legacy"

	all := []*Booking{future, yesterday, stale, legacy}

	ids := func(bookings []*Booking) []string {
		result := make([]string, 0, len(bookings))
		for _, b := range bookings {
			result = append(result, b.ID)
		}
		return result
	}

	assert.Equal(t, []string{"future", "yesterday", "legacy"}, ids(p.FilterForAdmin(all, FilterAll, now)))
	assert.Equal(t, []string{"future", "legacy"}, ids(p.FilterForAdmin(all, FilterConfirmed, now)))
	assert.Equal(t, []string{"yesterday"}, ids(p.FilterForAdmin(all, FilterCancelled, now)))

	// исходные записи не меняются
	assert.Len(t, all, 4)
	assert.Equal(t, StatusConfirmed, stale.Status)
}

func TestPolicy_ResolveAppointmentInstant(t *testing.T) {
	p := DefaultPolicy()

	t.Run("same year", func(t *testing.T) {
		got, err := p.ResolveAppointmentInstant("25 Dec", "14:00", at(2025, time.December, 20, 9, 0))
		require.NoError(t, err)
		assert.True(t, at(2025, time.December, 25, 14, 0).Equal(got))
	})

	t.Run("rolls over to next year", func(t *testing.T) {
		got, err := p.ResolveAppointmentInstant("2 Jan", "10:00", at(2025, time.December, 30, 18, 0))
		require.NoError(t, err)
		assert.True(t, at(2026, time.January, 2, 10, 0).Equal(got))
	})

	t.Run("earlier today stays in current year", func(t *testing.T) {
		got, err := p.ResolveAppointmentInstant("30 Dec", "10:00", at(2025, time.December, 30, 18, 0))
		require.NoError(t, err)
		assert.True(t, at(2025, time.December, 30, 10, 0).Equal(got))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := p.ResolveAppointmentInstant("tomorrow", "10:00", at(2025, time.December, 30, 18, 0))
		require.ErrorIs(t, err, ErrInvalidInstant)
	})
}

func TestPolicy_StoredInstantWinsOverYearGuess(t *testing.T) {
	p := DefaultPolicy()
	appointment := at(2026, time.January, 2, 10, 0)
	b := legacyBooking("2 Jan", "10:00", StatusConfirmed)
	b.AppointmentAt = &appointment

	now := at(2025, time.December, 30, 18, 0)

	hours, err := p.RemainingHours(b, now)
	require.NoError(t, err)
	assert.InDelta(t, 64.0, hours, 1e-9)
	assert.True(t, p.IsCancellable(b, now))
}

func TestPolicy_Countdown(t *testing.T) {
	p := DefaultPolicy()
	appointment := at(2025, time.May, 1, 10, 0)
	b := legacyBooking("1 May", "10:00", StatusConfirmed)
	b.AppointmentAt = &appointment

	t.Run("stops once the appointment starts", func(t *testing.T) {
		current := appointment.Add(-2 * time.Second)
		now := func() time.Time { return current }

		var ticks []CountdownTick
		err := p.Countdown(context.Background(), b, time.Millisecond, now, func(tick CountdownTick) error {
			ticks = append(ticks, tick)
			current = current.Add(time.Second)
			return nil
		})

		require.NoError(t, err)
		require.Len(t, ticks, 3)
		assert.False(t, ticks[0].Started)
		assert.True(t, ticks[2].Started)
		assert.InDelta(t, 0, ticks[2].RemainingHours, 1e-9)
	})

	t.Run("stops on context cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		now := func() time.Time { return appointment.Add(-time.Hour) }

		calls := 0
		err := p.Countdown(ctx, b, time.Hour, now, func(tick CountdownTick) error {
			calls++
			cancel()
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("emit error stops the countdown", func(t *testing.T) {
		errWrite := errors.New("client gone")
		now := func() time.Time { return appointment.Add(-time.Hour) }

		err := p.Countdown(context.Background(), b, time.Millisecond, now, func(tick CountdownTick) error {
			return errWrite
		})

		require.ErrorIs(t, err, errWrite)
	})

	t.Run("invalid instant", func(t *testing.T) {
		err := p.Countdown(context.Background(), legacyBooking("", "", StatusConfirmed), time.Millisecond, time.Now, func(CountdownTick) error {
			return nil
		})
		require.ErrorIs(t, err, ErrInvalidInstant)
	})
}

func TestPolicy_CancellationText(t *testing.T) {
	tests := []struct {
		hours int
		want  string
	}{
		{3, "up to 3 hours before"},
		{1, "up to 1 hour before"},
		{12, "up to 12 hours before"},
	}

	for _, tt := range tests {
		text := NewPolicy(tt.hours, 24, time.UTC).CancellationText()
		assert.Contains(t, text, tt.want)
		assert.True(t, strings.HasPrefix(text, "Strict Policy:"))
	}

	half := Policy{CancellationWindow: 90 * time.Minute}
	assert.Contains(t, half.CancellationText(), "up to 1.5 hours before")
}
