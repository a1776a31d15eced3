package get_catalog

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// PolicyResponse правила отмены
type PolicyResponse struct {
	CancellationWindowHours float64 `json:"cancellationWindowHours"`
	StalenessWindowHours    float64 `json:"stalenessWindowHours"`
	TimeZone                string  `json:"timeZone"`
	Text                    string  `json:"text"`
}

// CatalogResponse HTTP response model
type CatalogResponse struct {
	Services  []ServiceResponse `json:"services"`
	TimeSlots []string          `json:"timeSlots"`
	Colleges  []string          `json:"colleges"`
	Policy    PolicyResponse    `json:"policy"`
}

// BuildCatalogResponse собирает каталог из статической конфигурации и правил отмены
func BuildCatalogResponse(policy domain.Policy) *CatalogResponse {
	services := make([]ServiceResponse, 0, len(domain.Services))
	for _, s := range domain.Services {
		services = append(services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}

	timeZone := "UTC"
	if policy.Location != nil {
		timeZone = policy.Location.String()
	}

	return &CatalogResponse{
		Services:  services,
		TimeSlots: append([]string(nil), domain.TimeSlots...),
		Colleges:  append([]string(nil), domain.Colleges...),
		Policy: PolicyResponse{
			CancellationWindowHours: policy.CancellationWindow.Hours(),
			StalenessWindowHours:    policy.StalenessWindow.Hours(),
			TimeZone:                timeZone,
			Text:                    policy.CancellationText(),
		},
	}
}
