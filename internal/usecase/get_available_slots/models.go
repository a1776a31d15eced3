package get_available_slots

import "time"

const (
	// DefaultDays сколько дней показывает мастер записи
	DefaultDays = 3
	// MaxDays верхняя граница горизонта записи
	MaxDays = 14
)

// Request модель запроса на получение слотов
type Request struct {
	Days int `validate:"min=0,max=14"` // 0 означает DefaultDays
}

// Response модель ответа: ближайшие дни, начиная с сегодняшнего
type Response struct {
	Days []Day
}

// Day один день записи
type Day struct {
	Date    string    // "25 Dec"
	Weekday string    // "Mon"
	Start   time.Time // Начало дня в часовом поясе барбершопа
	Slots   []Slot
}

// Slot модель временного слота
type Slot struct {
	Time     string    // "14:00"
	StartsAt time.Time // Абсолютное время начала
	Bookable bool      // Слот еще не начался
	Booked   int       // Сколько подтвержденных записей уже на этот слот
}
