package delete_user

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/users"
)

const (
	msgInvalidUserID    = "некорректный ID пользователя"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgSelfModification = "нельзя удалить собственный аккаунт"
	msgNotFound         = "пользователь не найден"
	msgForbidden        = "удалять пользователей может только SUPER_ADMIN"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/users/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["userId"]
	if targetID == "" {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /admin/users/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), actorID, targetID); err != nil {
		switch {
		case errors.Is(err, users.ErrSelfModification):
			h.logger.Warn("DELETE /admin/users/{id} - Self deletion: user_id=%s", actorID)
			handlers.RespondForbidden(w, msgSelfModification)

		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/users/{id} - Access denied: user_id=%s", actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("DELETE /admin/users/{id} - User not found: target_id=%s", targetID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/users/{id} - Failed to delete user: target_id=%s, error=%v", targetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/users/{id} - User deleted: target_id=%s, actor_id=%s", targetID, actorID)
	w.WriteHeader(http.StatusNoContent)
}
