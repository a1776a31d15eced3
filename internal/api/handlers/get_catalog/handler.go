package get_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

type Handler struct {
	policy PolicyProvider
	logger Logger
}

func NewHandler(policy PolicyProvider, logger Logger) *Handler {
	return &Handler{
		policy: policy,
		logger: logger,
	}
}

// Handle GET /api/v1/catalog
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response := BuildCatalogResponse(h.policy.Policy())

	h.logger.Info("GET /catalog - Catalog retrieved: services=%d, slots=%d",
		len(response.Services), len(response.TimeSlots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
