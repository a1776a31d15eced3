package cancel_booking

import (
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
)

// CancelBookingResponse HTTP response model, одинаковый для успеха и отказа
type CancelBookingResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	HoursBefore *float64 `json:"hoursBefore,omitempty"`
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(res *models.CancelResult) *CancelBookingResponse {
	hours := res.HoursBefore
	return &CancelBookingResponse{
		Success:     res.Success,
		Message:     res.Message,
		HoursBefore: &hours,
	}
}

// Refused ответ на отказ в отмене
func Refused(message string) *CancelBookingResponse {
	return &CancelBookingResponse{
		Success: false,
		Message: message,
	}
}
