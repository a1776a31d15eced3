package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidTimeSlot возвращается, когда время не входит в список слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidDate возвращается, когда дату невозможно разобрать
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrAppointmentInPast возвращается, когда время визита уже прошло
	ErrAppointmentInPast = errors.New("create_booking: appointment is in the past")

	// ErrUserNotFound возвращается, когда у пользователя нет профиля
	ErrUserNotFound = errors.New("create_booking: user profile not found")

	// ErrForbidden возвращается, когда роли пользователя не хватает для записи
	ErrForbidden = errors.New("create_booking: booking not allowed for user role")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
