package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    string `validate:"required"`        // ID пользователя из identity provider
	ServiceID string `validate:"required"`        // ID услуги из каталога
	Date      string `validate:"required,max=32"` // Дата визита, например "25 Dec"
	Time      string `validate:"required,len=5"`  // Время слота, например "14:00"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string // ID созданного бронирования
	UserID    string
	UserName  string
	ServiceID string
	Date      string
	Time      string
	Status    string

	// Денормализованные данные
	UserTelegram *string
	UserCollege  *string
	ServiceName  string
	ServicePrice float64

	AppointmentAt time.Time // Абсолютное время визита
	CreatedAt     time.Time // Время создания
}
