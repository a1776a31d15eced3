package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// buildDays строит сетку слотов на days дней, начиная с сегодняшнего
func buildDays(now time.Time, days int, loc *time.Location) []Day {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	result := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		start := today.AddDate(0, 0, i)

		slots := make([]Slot, 0, len(domain.TimeSlots))
		for _, clock := range domain.TimeSlots {
			startsAt, err := domain.ComputeAppointmentInstant(start.Format(domain.DateFormat), clock, start.Year(), loc)
			if err != nil {
				continue
			}
			slots = append(slots, Slot{
				Time:     clock,
				StartsAt: startsAt,
				Bookable: startsAt.After(now),
			})
		}

		result = append(result, Day{
			Date:    start.Format(domain.DateFormat),
			Weekday: start.Format("Mon"),
			Start:   start,
			Slots:   slots,
		})
	}

	return result
}

// countBooked проставляет число подтвержденных записей на каждый слот.
// Запись засчитывается, только если её время визита совпадает со слотом, так что
// "25 Dec" прошлого года не попадает в текущую сетку.
func countBooked(days []Day, bookings []*domain.Booking, policy domain.Policy, now time.Time) {
	counts := make(map[time.Time]int, len(bookings))
	for _, b := range bookings {
		if !domain.FilterConfirmed.Matches(b) {
			continue
		}
		instant, err := policy.AppointmentInstant(b, now)
		if err != nil {
			continue
		}
		counts[instant.UTC()]++
	}

	for i := range days {
		for j := range days[i].Slots {
			days[i].Slots[j].Booked = counts[days[i].Slots[j].StartsAt.UTC()]
		}
	}
}

// dateLabels метки дней для выборки из хранилища
func dateLabels(days []Day) []string {
	labels := make([]string, 0, len(days))
	for _, d := range days {
		labels = append(labels, d.Date)
	}
	return labels
}
