package get_catalog

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// PolicyProvider источник действующих правил отмены
type PolicyProvider interface {
	Policy() domain.Policy
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
