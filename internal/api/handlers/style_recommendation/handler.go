package style_recommendation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/stylist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите форму лица и тип волос"
)

type Handler struct {
	service StylistService
	logger  Logger
}

func NewHandler(service StylistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/recommendations/style
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req stylist.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /recommendations/style - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Recommend(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, stylist.ErrInvalidInput):
			h.logger.Warn("POST /recommendations/style - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, stylist.ErrProviderNotConfigured):
			h.logger.Warn("POST /recommendations/style - Provider is not configured")
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /recommendations/style - Failed to get recommendation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /recommendations/style - Recommendation served: source=%s", result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
