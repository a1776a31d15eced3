package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене. Статус остается cancelled.
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrCancellationWindowClosed возвращается, когда до визита меньше окна отмены
	ErrCancellationWindowClosed = errors.New("cancellation window has closed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidInstant возвращается, когда время визита невозможно вычислить
	ErrInvalidInstant = errors.New("booking has no valid appointment time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
