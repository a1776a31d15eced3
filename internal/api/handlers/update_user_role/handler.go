package update_user_role

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/users"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRole        = "некорректная роль, ожидается STUDENT, ADMIN или SUPER_ADMIN"
	msgSelfModification   = "нельзя изменить собственную роль"
	msgNotFound           = "пользователь не найден"
	msgForbidden          = "менять роли может только SUPER_ADMIN"
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

// Handle PATCH /api/v1/admin/users/{userId}/role
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["userId"]
	if targetID == "" {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/users/{id}/role - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateUserRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/users/{id}/role - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateRole(r.Context(), req.ToServiceRequest(actorID, targetID))
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/users/{id}/role - Invalid role: %q", req.Role)
			handlers.RespondBadRequest(w, msgInvalidRole)

		case errors.Is(err, users.ErrSelfModification):
			h.logger.Warn("PATCH /admin/users/{id}/role - Self modification: user_id=%s", actorID)
			handlers.RespondForbidden(w, msgSelfModification)

		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/users/{id}/role - Access denied: user_id=%s", actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PATCH /admin/users/{id}/role - User not found: target_id=%s", targetID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/users/{id}/role - Failed to update role: target_id=%s, error=%v",
				targetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/users/{id}/role - Role updated: target_id=%s, role=%s, actor_id=%s",
		targetID, result.Role, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
