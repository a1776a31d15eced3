package get_available_slots

import (
	"fmt"
	"strconv"
	"time"

	getAvailableSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP ответ со слотами на ближайшие дни
type SlotsResponse struct {
	Days []DayResponse `json:"days"`
}

// DayResponse день записи
type DayResponse struct {
	Date    string         `json:"date"`
	Weekday string         `json:"weekday"`
	Slots   []SlotResponse `json:"slots"`
}

// SlotResponse слот
type SlotResponse struct {
	Time     string `json:"time"`
	StartsAt string `json:"startsAt"`
	Bookable bool   `json:"bookable"`
	Booked   int    `json:"booked"`
}

// ToUseCaseRequest разбирает query параметр days, пустое значение означает значение по умолчанию
func ToUseCaseRequest(daysStr string) (*getAvailableSlots.Request, error) {
	if daysStr == "" {
		return &getAvailableSlots.Request{}, nil
	}

	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return nil, fmt.Errorf("invalid days value: %w", err)
	}

	return &getAvailableSlots.Request{Days: days}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		slots := make([]SlotResponse, 0, len(d.Slots))
		for _, s := range d.Slots {
			slots = append(slots, SlotResponse{
				Time:     s.Time,
				StartsAt: s.StartsAt.Format(time.RFC3339),
				Bookable: s.Bookable,
				Booked:   s.Booked,
			})
		}
		days = append(days, DayResponse{
			Date:    d.Date,
			Weekday: d.Weekday,
			Slots:   slots,
		})
	}

	return &SlotsResponse{Days: days}
}
