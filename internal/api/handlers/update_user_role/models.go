package update_user_role

import (
	"github.com/m04kA/SMC-BarberBooking/internal/service/users/models"
)

// UpdateUserRoleRequest HTTP request model
type UpdateUserRoleRequest struct {
	Role string `json:"role"` // STUDENT, ADMIN, SUPER_ADMIN
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateUserRoleRequest) ToServiceRequest(actorID, targetID string) *models.UpdateRoleRequest {
	return &models.UpdateRoleRequest{
		ActorID:  actorID,
		TargetID: targetID,
		Role:     r.Role,
	}
}
