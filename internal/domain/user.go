package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role represents a user role. Roles are ordered: Student < Admin < SuperAdmin.
type Role int

const (
	RoleUnknown Role = iota
	RoleStudent
	RoleAdmin
	RoleSuperAdmin
)

var roleNames = map[Role]string{
	RoleStudent:    "STUDENT",
	RoleAdmin:      "ADMIN",
	RoleSuperAdmin: "SUPER_ADMIN",
}

// String returns the stored representation of the role
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// AtLeast returns true if the role is the same or higher than other
func (r Role) AtLeast(other Role) bool {
	return r.IsValid() && r >= other
}

// ParseRole parses a role name case-insensitively
func ParseRole(s string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for role, name := range roleNames {
		if name == normalized {
			return role, nil
		}
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Action действие, доступ к которому определяется ролью
type Action string

const (
	ActionCreateBooking   Action = "booking:create"
	ActionViewAnyBooking  Action = "booking:view_any"
	ActionViewAllBookings Action = "booking:list_all"
	ActionDeleteBooking   Action = "booking:delete"
	ActionListUsers       Action = "user:list"
	ActionManageRoles     Action = "user:manage_roles"
	ActionDeleteUsers     Action = "user:delete"
)

// minimumRole минимальная роль для каждого действия
var minimumRole = map[Action]Role{
	ActionCreateBooking:   RoleStudent,
	ActionViewAnyBooking:  RoleAdmin,
	ActionViewAllBookings: RoleAdmin,
	ActionDeleteBooking:   RoleAdmin,
	ActionListUsers:       RoleAdmin,
	ActionManageRoles:     RoleSuperAdmin,
	ActionDeleteUsers:     RoleSuperAdmin,
}

// HasPermission единственная проверка прав: роль не ниже минимальной для действия
func HasPermission(role Role, action Action) bool {
	min, ok := minimumRole[action]
	if !ok {
		return false
	}
	return role.AtLeast(min)
}

// User профиль пользователя
type User struct {
	ID        string // ID из identity provider
	Name      string
	Email     string
	Telegram  *string
	Phone     *string
	College   *string
	Role      Role
	CreatedAt time.Time
}

// Can проверяет право пользователя на действие
func (u *User) Can(action Action) bool {
	return HasPermission(u.Role, action)
}

// Identity данные, выданные identity provider при входе
type Identity struct {
	UserID string
	Email  string
}
