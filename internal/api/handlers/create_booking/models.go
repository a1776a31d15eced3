package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"` // "25 Dec"
	Time      string `json:"time"` // "14:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	UserName      string  `json:"userName"`
	UserTelegram  *string `json:"userTelegram,omitempty"`
	UserCollege   *string `json:"userCollege,omitempty"`
	ServiceID     string  `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	ServicePrice  float64 `json:"servicePrice"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Status        string  `json:"status"`
	AppointmentAt string  `json:"appointmentAt"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// userID берется из контекста аутентификации, а не из тела.
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) *createBooking.Request {
	return &createBooking.Request{
		UserID:    userID,
		ServiceID: r.ServiceID,
		Date:      r.Date,
		Time:      r.Time,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		UserName:      resp.UserName,
		UserTelegram:  resp.UserTelegram,
		UserCollege:   resp.UserCollege,
		ServiceID:     resp.ServiceID,
		ServiceName:   resp.ServiceName,
		ServicePrice:  resp.ServicePrice,
		Date:          resp.Date,
		Time:          resp.Time,
		Status:        resp.Status,
		AppointmentAt: resp.AppointmentAt.Format(time.RFC3339),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
