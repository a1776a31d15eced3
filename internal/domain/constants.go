package domain

// Default policy values
const (
	DefaultCancellationWindowHours = 3
	DefaultStalenessWindowHours    = 24
	DefaultTimeZone                = "Asia/Kuala_Lumpur"
)

// Business validation constants
const (
	MaxNameLength        = 100
	MaxTelegramLength    = 64
	MaxPhoneLength       = 32
	MaxDescriptionLength = 500
	MaxStyleFieldLength  = 64
)

// Time format constants
const (
	DateFormat = "2 Jan" // "25 Dec"
	TimeFormat = "15:04" // HH:MM
)

// cancellationPolicyTemplate текст правил отмены, %s - окно отмены ("3 hours")
const cancellationPolicyTemplate = "Strict Policy: You can only cancel up to %s before your slot. " +
	"Late cancellations disrupt the flow for other students."

// Service услуга барбершопа (статическая конфигурация)
type Service struct {
	ID              string
	Name            string
	Price           float64
	DurationMinutes int
}

// Services каталог услуг
var Services = []Service{
	{ID: "kpz_walkin", Name: "KPZ Walk-in (My Block)", Price: 13, DurationMinutes: 30},
	{ID: "house_call", Name: "House Call (Your Kolej)", Price: 15, DurationMinutes: 45},
}

// FindService ищет услугу по ID
func FindService(id string) (Service, bool) {
	for _, s := range Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// TimeSlots фиксированный список слотов на день
var TimeSlots = []string{
	"10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00",
	"20:00", "20:30", "21:00",
}

// IsKnownTimeSlot проверяет, что время входит в список слотов
func IsKnownTimeSlot(t string) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}

// Colleges список колледжей кампуса
var Colleges = []string{
	"Kolej Ibrahim Yaakub (KIY)",
	"Kolej Dato' Onn (KDO)",
	"Kolej Aminuddin Baki (KAB)",
	"Kolej Ungku Omar (KUO)",
	"Kolej Burhanuddin Helmi (KBH)",
	"Kolej Rahim Kajai (KRK)",
	"Kolej Ibu Zain (KIZ)",
	"Kolej Keris Mas (KKM)",
	"Kolej Tun Hussein Onn (KTHO)",
	"Kolej Pendeta Za'ba (KPZ)",
}

// IsKnownCollege проверяет, что колледж есть в списке
func IsKnownCollege(name string) bool {
	for _, c := range Colleges {
		if c == name {
			return true
		}
	}
	return false
}
