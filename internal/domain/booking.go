package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a barbershop appointment
type Booking struct {
	ID string

	// Denormalized snapshot of the requester at booking time
	UserID       string
	UserName     string
	UserTelegram *string
	UserCollege  *string

	ServiceID string
	Date      string // "25 Dec", без года
	Time      string // "14:00", один из TimeSlots

	// AppointmentAt абсолютное время визита, вычисленное при создании.
	// У старых записей отсутствует, тогда год восстанавливается из текущей даты.
	AppointmentAt *time.Time

	// Status может быть пустым у старых записей
	Status BookingStatus

	CreatedAt   time.Time
	CancelledAt *time.Time
}

// IsConfirmed returns true if the booking is explicitly confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// OwnedBy returns true if the booking belongs to the user
func (b *Booking) OwnedBy(userID string) bool {
	return b.UserID == userID
}

// StatusFilter фильтр списка бронирований в админке
type StatusFilter string

const (
	FilterAll       StatusFilter = "ALL"
	FilterConfirmed StatusFilter = "CONFIRMED"
	FilterCancelled StatusFilter = "CANCELLED"
)

// ParseStatusFilter разбирает фильтр без учёта регистра, пустая строка означает ALL
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(strings.ToUpper(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterConfirmed:
		return FilterConfirmed, nil
	case FilterCancelled:
		return FilterCancelled, nil
	default:
		return "", fmt.Errorf("unknown status filter %q", s)
	}
}

// Matches проверяет бронирование на соответствие фильтру.
// CONFIRMED совпадает и с записями без статуса.
func (f StatusFilter) Matches(b *Booking) bool {
	switch f {
	case FilterCancelled:
		return b.Status == StatusCancelled
	case FilterConfirmed:
		return b.Status == StatusConfirmed || b.Status == ""
	default:
		return true
	}
}
