package get_admin_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(actorID string, statusStr string, includeStaleStr string) (*models.AdminBookingsRequest, error) {
	req := &models.AdminBookingsRequest{
		ActorID:      actorID,
		Status:       statusStr,
		IncludeStale: false, // По умолчанию только актуальные
	}

	if includeStaleStr != "" {
		includeStale, err := strconv.ParseBool(includeStaleStr)
		if err != nil {
			return nil, fmt.Errorf("invalid all value: %w", err)
		}
		req.IncludeStale = includeStale
	}

	return req, nil
}
