package stylist

import "errors"

var (
	// ErrProviderNotConfigured возвращается, когда не задан API ключ модели
	ErrProviderNotConfigured = errors.New("stylist: recommendation provider is not configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("stylist: invalid input data")
)
