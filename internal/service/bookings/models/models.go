package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request модели

// AdminBookingsRequest запрос на получение бронирований для админки
type AdminBookingsRequest struct {
	ActorID      string `json:"actorId"`
	Status       string `json:"status,omitempty"`       // ALL, CONFIRMED, CANCELLED; пусто = ALL
	IncludeStale bool   `json:"includeStale,omitempty"` // Не применять окно актуальности
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"` // "25 Dec"
	Time      string `json:"time"` // "14:00"
	Status    string `json:"status"`

	// Снимок данных пользователя на момент записи
	UserName     string  `json:"userName"`
	UserTelegram *string `json:"userTelegram,omitempty"`
	UserCollege  *string `json:"userCollege,omitempty"`

	ServiceName  string  `json:"serviceName,omitempty"`
	ServicePrice float64 `json:"servicePrice,omitempty"`

	AppointmentAt *time.Time `json:"appointmentAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	CancelledAt   *string    `json:"cancelledAt,omitempty"` // ISO 8601 format

	// Предпросмотр отмены, заполняется только для одной записи
	RemainingHours *float64 `json:"remainingHours,omitempty"`
	Cancellable    *bool    `json:"cancellable,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelResult результат попытки отмены
type CancelResult struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	HoursBefore float64 `json:"hoursBefore"` // Сколько часов оставалось до визита в момент отмены
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ServiceID:     b.ServiceID,
		Date:          b.Date,
		Time:          b.Time,
		Status:        string(b.Status),
		UserName:      b.UserName,
		UserTelegram:  b.UserTelegram,
		UserCollege:   b.UserCollege,
		AppointmentAt: b.AppointmentAt,
		CreatedAt:     b.CreatedAt,
	}

	if service, ok := domain.FindService(b.ServiceID); ok {
		resp.ServiceName = service.Name
		resp.ServicePrice = service.Price
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
