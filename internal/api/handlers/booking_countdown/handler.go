package booking_countdown

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings"
)

const (
	eventTick = "tick"

	msgInvalidBookingID  = "некорректный ID бронирования"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "бронирование не найдено"
	msgForbidden         = "доступ запрещен"
	msgInvalidInstant    = "у бронирования некорректные дата или время"
	msgStreamUnsupported = "потоковая передача не поддерживается"
)

type Handler struct {
	service  BookingService
	interval time.Duration
	logger   Logger
}

// NewHandler interval период пересчета оставшегося времени
func NewHandler(service BookingService, interval time.Duration, logger Logger) *Handler {
	return &Handler{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/countdown
// Server-Sent Events: событие "tick" каждые interval, поток закрывается после started=true
// или при отключении клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/countdown - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /bookings/{id}/countdown - ResponseWriter does not support flushing")
		handlers.RespondError(w, http.StatusInternalServerError, msgStreamUnsupported)
		return
	}

	// Общий WriteTimeout сервера не должен обрывать поток
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	// Заголовки отправляются вместе с первым событием, чтобы ошибки доступа
	// успели вернуться обычным JSON ответом
	streaming := false
	emit := func(tick domain.CountdownTick) error {
		if !streaming {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.WriteHeader(http.StatusOK)
			streaming = true
		}

		payload, err := json.Marshal(FromDomainTick(tick))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventTick, payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	err := h.service.Countdown(r.Context(), bookingID, userID, h.interval, emit)
	if err == nil {
		h.logger.Info("GET /bookings/{id}/countdown - Stream closed: booking_id=%s, user_id=%s", bookingID, userID)
		return
	}

	if streaming {
		h.logger.Warn("GET /bookings/{id}/countdown - Stream interrupted: booking_id=%s, error=%v", bookingID, err)
		return
	}

	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/{id}/countdown - Booking not found: booking_id=%s", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id}/countdown - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, bookings.ErrInvalidInstant):
		h.logger.Warn("GET /bookings/{id}/countdown - Invalid appointment time: booking_id=%s", bookingID)
		handlers.RespondConflict(w, msgInvalidInstant)

	default:
		h.logger.Error("GET /bookings/{id}/countdown - Failed: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
