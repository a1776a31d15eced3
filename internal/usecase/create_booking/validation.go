package create_booking

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, ok := domain.FindService(req.ServiceID); !ok {
		return fmt.Errorf("%w: %q", ErrServiceNotFound, req.ServiceID)
	}

	if !domain.IsKnownTimeSlot(req.Time) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeSlot, req.Time)
	}

	return nil
}
