package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
)

const (
	selectByIDQuery = `SELECT id, user_id, user_name, user_telegram, user_college, service_id, date, time, appointment_at, status, created_at, cancelled_at FROM bookings WHERE id = \$1`
	insertQuery     = `INSERT INTO bookings \(id,user_id,user_name,user_telegram,user_college,service_id,date,time,appointment_at,status,created_at\) VALUES \(.+\) ON CONFLICT \(id\) DO NOTHING`
	updateQuery     = `UPDATE bookings SET status = \$1, cancelled_at = NOW\(\) WHERE \(?id = \$2 AND status = \$3\)?`
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewRepository(dbmetrics.Wrap(db, nil, "test")), mock
}

func bookingRow(id string, status interface{}, appointmentAt interface{}) *sqlmock.Rows {
	created := time.Date(2025, time.December, 20, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(bookingColumns).
		AddRow(id, "uid-1", "ALI", "@ali", nil, "kpz_walkin", "25 Dec", "14:00", appointmentAt, status, created, nil)
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed to cancelled", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(updateQuery).
			WithArgs("cancelled", "b-1", "confirmed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "b-1", domain.StatusConfirmed, domain.StatusCancelled)

		require.NoError(t, err)
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(updateQuery).
			WithArgs("cancelled", "b-1", "cancelled").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(selectByIDQuery).
			WithArgs("b-1").
			WillReturnRows(bookingRow("b-1", "cancelled", nil))

		err := repo.UpdateStatus(ctx, "b-1", domain.StatusCancelled, domain.StatusCancelled)

		require.ErrorIs(t, err, ErrStatusConflict)
	})

	t.Run("missing booking", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(updateQuery).
			WithArgs("cancelled", "ghost", "confirmed").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(selectByIDQuery).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		err := repo.UpdateStatus(ctx, "ghost", domain.StatusConfirmed, domain.StatusCancelled)

		require.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("restore does not touch cancelled_at", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(`UPDATE bookings SET status = \$1 WHERE \(?id = \$2 AND status = \$3\)?`).
			WithArgs("confirmed", "b-1", "cancelled").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "b-1", domain.StatusCancelled, domain.StatusConfirmed)

		require.NoError(t, err)
	})

	t.Run("driver failure", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(updateQuery).WillReturnError(errors.New("connection reset"))

		err := repo.UpdateStatus(ctx, "b-1", domain.StatusConfirmed, domain.StatusCancelled)

		require.ErrorIs(t, err, ErrExecQuery)
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("legacy row without status and appointment", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(selectByIDQuery).
			WithArgs("legacy-1").
			WillReturnRows(bookingRow("legacy-1", nil, nil))

		booking, err := repo.GetByID(ctx, "legacy-1")

		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatus(""), booking.Status)
		assert.Nil(t, booking.AppointmentAt)
		assert.Nil(t, booking.UserCollege)
		require.NotNil(t, booking.UserTelegram)
		assert.Equal(t, "@ali", *booking.UserTelegram)
		assert.Equal(t, "25 Dec", booking.Date)
	})

	t.Run("stored row", func(t *testing.T) {
		repo, mock := newRepo(t)
		at := time.Date(2025, time.December, 25, 14, 0, 0, 0, time.UTC)
		mock.ExpectQuery(selectByIDQuery).
			WithArgs("b-1").
			WillReturnRows(bookingRow("b-1", "confirmed", at))

		booking, err := repo.GetByID(ctx, "b-1")

		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, booking.Status)
		require.NotNil(t, booking.AppointmentAt)
		assert.True(t, booking.AppointmentAt.Equal(at))
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(selectByIDQuery).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, "ghost")

		require.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("no lock outside transaction", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(selectByIDQuery + `$`).
			WithArgs("b-1").
			WillReturnRows(bookingRow("b-1", "confirmed", nil))

		_, err := repo.GetByIDForUpdate(ctx, "b-1")

		require.NoError(t, err)
	})
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	anyArgs := func(id string) []driver.Value {
		args := []driver.Value{id}
		for i := 0; i < 10; i++ {
			args = append(args, sqlmock.AnyArg())
		}
		return args
	}

	t.Run("assigns id", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(0, 1))

		booking, err := repo.Create(ctx, &domain.Booking{
			UserID:    "uid-1",
			UserName:  "ALI",
			ServiceID: "kpz_walkin",
			Date:      "25 Dec",
			Time:      "14:00",
			Status:    domain.StatusConfirmed,
		})

		require.NoError(t, err)
		_, err = uuid.Parse(booking.ID)
		assert.NoError(t, err)
	})

	t.Run("retry with same id is absorbed by conflict clause", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(insertQuery).
			WithArgs(anyArgs("b-keep")...).
			WillReturnResult(sqlmock.NewResult(0, 0))

		booking, err := repo.Create(ctx, &domain.Booking{ID: "b-keep", Status: domain.StatusConfirmed})

		require.NoError(t, err)
		assert.Equal(t, "b-keep", booking.ID)
	})

	t.Run("driver failure", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(insertQuery).WillReturnError(errors.New("permission denied"))

		_, err := repo.Create(ctx, &domain.Booking{ID: "b-1"})

		require.ErrorIs(t, err, ErrExecQuery)
	})
}

func TestRepository_ListByDates(t *testing.T) {
	ctx := context.Background()

	t.Run("in clause", func(t *testing.T) {
		repo, mock := newRepo(t)
		rows := bookingRow("b-1", "confirmed", nil).
			AddRow("b-2", "uid-2", "SITI", nil, nil, "house_call", "26 Dec", "10:00", nil, "cancelled", time.Now(), time.Now())
		mock.ExpectQuery(`FROM bookings WHERE date IN \(\$1,\$2\) ORDER BY date, time`).
			WithArgs("25 Dec", "26 Dec").
			WillReturnRows(rows)

		bookings, err := repo.ListByDates(ctx, []string{"25 Dec", "26 Dec"})

		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, "b-1", bookings[0].ID)
		assert.Equal(t, domain.StatusCancelled, bookings[1].Status)
		assert.NotNil(t, bookings[1].CancelledAt)
	})

	t.Run("no dates means no query", func(t *testing.T) {
		repo, _ := newRepo(t)

		bookings, err := repo.ListByDates(ctx, nil)

		require.NoError(t, err)
		assert.Empty(t, bookings)
	})
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")

	require.ErrorIs(t, err, ErrBookingNotFound)
}
