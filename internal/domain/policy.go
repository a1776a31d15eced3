package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidInstant возвращается, когда дату и время визита невозможно разобрать
var ErrInvalidInstant = errors.New("invalid appointment instant")

// appointmentLayouts форматы "дата год время", которые принимает разбор
var appointmentLayouts = []string{
	"2 Jan 2006 15:04",
	"2 January 2006 15:04",
	"Jan 2 2006 15:04",
	"January 2 2006 15:04",
}

// ComputeAppointmentInstant собирает абсолютное время визита из даты без года,
// времени и года-ориентира
func ComputeAppointmentInstant(date, clock string, referenceYear int, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, ErrInvalidInstant
	}
	if loc == nil {
		loc = time.UTC
	}

	value := fmt.Sprintf("%s %d %s", date, referenceYear, clock)
	for _, layout := range appointmentLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidInstant
}

// Policy правила отмены и видимости бронирований
type Policy struct {
	CancellationWindow time.Duration // Минимальный запас до визита для отмены
	StalenessWindow    time.Duration // Сколько прошедший визит виден в админке
	Location           *time.Location
}

// NewPolicy создает политику из значений в часах
func NewPolicy(cancellationWindowHours, stalenessWindowHours int, loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{
		CancellationWindow: time.Duration(cancellationWindowHours) * time.Hour,
		StalenessWindow:    time.Duration(stalenessWindowHours) * time.Hour,
		Location:           loc,
	}
}

// DefaultPolicy политика по умолчанию: 3 часа на отмену, 24 часа видимости, UTC
func DefaultPolicy() Policy {
	return NewPolicy(DefaultCancellationWindowHours, DefaultStalenessWindowHours, time.UTC)
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// TimeZone часовой пояс барбершопа, UTC если не задан
func (p Policy) TimeZone() *time.Location {
	return p.location()
}

// CancellationText текст правил отмены с фактическим окном отмены
func (p Policy) CancellationText() string {
	return fmt.Sprintf(cancellationPolicyTemplate, formatHours(p.CancellationWindow))
}

func formatHours(d time.Duration) string {
	hours := d.Hours()
	unit := "hours"
	if hours == 1 {
		unit = "hour"
	}
	return strconv.FormatFloat(hours, 'f', -1, 64) + " " + unit
}

// ResolveAppointmentInstant вычисляет время визита при создании бронирования.
// Если дата в текущем году уже прошла (раньше сегодняшнего дня), берётся следующий год:
// бронь на "2 Jan", сделанная 30 декабря, относится к январю следующего года.
func (p Policy) ResolveAppointmentInstant(date, clock string, now time.Time) (time.Time, error) {
	loc := p.location()
	local := now.In(loc)

	instant, err := ComputeAppointmentInstant(date, clock, local.Year(), loc)
	if err != nil {
		return time.Time{}, err
	}

	startOfToday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if instant.Before(startOfToday) {
		return ComputeAppointmentInstant(date, clock, local.Year()+1, loc)
	}

	return instant, nil
}

// AppointmentInstant возвращает абсолютное время визита.
// Для записей без сохранённого времени год берётся из now.
func (p Policy) AppointmentInstant(b *Booking, now time.Time) (time.Time, error) {
	if b.AppointmentAt != nil && !b.AppointmentAt.IsZero() {
		return *b.AppointmentAt, nil
	}
	loc := p.location()
	return ComputeAppointmentInstant(b.Date, b.Time, now.In(loc).Year(), loc)
}

// RemainingHours часы до визита, отрицательные после его начала
func (p Policy) RemainingHours(b *Booking, now time.Time) (float64, error) {
	instant, err := p.AppointmentInstant(b, now)
	if err != nil {
		return 0, err
	}
	return instant.Sub(now).Hours(), nil
}

// IsCancellable разрешает отмену только подтверждённой брони и только
// не позже чем за CancellationWindow до визита. Неразборчивое время запрещает отмену.
func (p Policy) IsCancellable(b *Booking, now time.Time) bool {
	if !b.IsConfirmed() {
		return false
	}
	instant, err := p.AppointmentInstant(b, now)
	if err != nil {
		return false
	}
	return instant.Sub(now) >= p.CancellationWindow
}

// IsRelevantForAdmin решает, показывать ли бронь в админке.
// Неразборчивое время показывается всегда.
func (p Policy) IsRelevantForAdmin(b *Booking, now time.Time) bool {
	instant, err := p.AppointmentInstant(b, now)
	if err != nil {
		return true
	}
	if instant.After(now) {
		return true
	}
	return now.Sub(instant) < p.StalenessWindow
}

// FilterForAdmin оставляет актуальные брони, подходящие под фильтр статуса.
// Исходный срез не меняется.
func (p Policy) FilterForAdmin(bookings []*Booking, filter StatusFilter, now time.Time) []*Booking {
	result := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if !p.IsRelevantForAdmin(b, now) {
			continue
		}
		if !filter.Matches(b) {
			continue
		}
		result = append(result, b)
	}
	return result
}
