package booking_countdown

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

// stubService отдает заранее заданные тики
type stubService struct {
	ticks []domain.CountdownTick
	err   error
}

func (s *stubService) Countdown(ctx context.Context, bookingID string, actorID string, interval time.Duration, emit func(domain.CountdownTick) error) error {
	if s.err != nil {
		return s.err
	}
	for _, tick := range s.ticks {
		if err := emit(tick); err != nil {
			return err
		}
	}
	return nil
}

func newRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/b-1/countdown", nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": "b-1"})
	return req.WithContext(middleware.WithIdentity(req.Context(), domain.Identity{UserID: "u-1"}))
}

func TestHandle_StreamsTicks(t *testing.T) {
	svc := &stubService{ticks: []domain.CountdownTick{
		{RemainingHours: 1.5},
		{RemainingHours: 0, Started: true},
	}}

	rec := httptest.NewRecorder()
	NewHandler(svc, time.Second, logger.NewNop()).Handle(rec, newRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event: tick\n"))
	assert.Contains(t, body, `data: {"remainingHours":1.5,"started":false}`)
	assert.Contains(t, body, `data: {"remainingHours":0,"started":true}`)
	assert.True(t, rec.Flushed)
}

func TestHandle_ErrorsBeforeStream(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"denied", bookings.ErrAccessDenied, http.StatusForbidden},
		{"invalid instant", bookings.ErrInvalidInstant, http.StatusConflict},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubService{err: tt.err}, time.Second, logger.NewNop()).Handle(rec, newRequest())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
