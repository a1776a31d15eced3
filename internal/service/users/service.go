package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-BarberBooking/internal/service/users/models"
)

const fallbackName = "STUDENT"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Service сервис профилей и ролей пользователей
type Service struct {
	userRepo           UserRepository
	retrier            Retrier
	defaultEmailDomain string
	timeProvider       TimeProvider
	logger             Logger
}

// NewService создает новый экземпляр сервиса пользователей.
// defaultEmailDomain дописывается к логину без "@" (например, "student.ukm.my").
func NewService(userRepo UserRepository, retrier Retrier, defaultEmailDomain string, logger Logger) *Service {
	return &Service{
		userRepo:           userRepo,
		retrier:            retrier,
		defaultEmailDomain: defaultEmailDomain,
		timeProvider:       realTimeProvider{},
		logger:             logger,
	}
}

// Register создает профиль только что зарегистрированного пользователя с ролью STUDENT.
// Повышенные роли выдаются только через Provision.
func (s *Service) Register(ctx context.Context, identity domain.Identity, req *models.RegisterRequest) (*models.UserResponse, error) {
	s.logger.Info("Register: user=%s", identity.UserID)

	if identity.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if req == nil {
		req = &models.RegisterRequest{}
	}
	if err := validate.Struct(req); err != nil {
		s.logger.Warn("Register: validation failed for user=%s: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.College != nil && *req.College != "" && !domain.IsKnownCollege(*req.College) {
		return nil, fmt.Errorf("%w: unknown college %q", ErrInvalidInput, *req.College)
	}

	email := identity.Email
	if email == "" {
		email = req.Email
	}
	email = s.normalizeEmail(email)

	user := &domain.User{
		ID:        identity.UserID,
		Name:      NameFromEmail(email),
		Email:     email,
		Telegram:  trimOptional(req.Telegram),
		Phone:     trimOptional(req.Phone),
		College:   trimOptional(req.College),
		Role:      domain.RoleStudent,
		CreatedAt: s.timeProvider.Now(),
	}

	var created *domain.User
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.userRepo.Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserExists) {
			s.logger.Warn("Register: user=%s already registered", identity.UserID)
			return nil, ErrUserExists
		}
		s.logger.Error("Register: repository error for user=%s: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created profile user=%s name=%s", created.ID, created.Name)
	return models.FromDomainUser(created), nil
}

// Me возвращает профиль текущего пользователя
func (s *Service) Me(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, "Me", userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainUser(user), nil
}

// List возвращает всех пользователей (администратор и выше)
func (s *Service) List(ctx context.Context, actorID string) (*models.UserListResponse, error) {
	if err := s.checkPermission(ctx, actorID, domain.ActionListUsers); err != nil {
		s.logger.Warn("List: access denied for user=%s", actorID)
		return nil, err
	}

	var users []*domain.User
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		users, err = s.userRepo.List(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUserList(users), nil
}

// UpdateRole меняет роль другого пользователя (только SUPER_ADMIN, не себе)
func (s *Service) UpdateRole(ctx context.Context, req *models.UpdateRoleRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateRole: user=%s sets role=%s for user=%s", req.ActorID, req.Role, req.TargetID)

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.ActorID == req.TargetID {
		s.logger.Warn("UpdateRole: user=%s tried to change own role", req.ActorID)
		return nil, ErrSelfModification
	}

	if err := s.checkPermission(ctx, req.ActorID, domain.ActionManageRoles); err != nil {
		s.logger.Warn("UpdateRole: access denied for user=%s", req.ActorID)
		return nil, err
	}

	err = s.retrier.Do(ctx, func(ctx context.Context) error {
		return s.userRepo.UpdateRole(ctx, req.TargetID, role)
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateRole: repository error for user=%s: %v", req.TargetID, err)
		return nil, fmt.Errorf("%w: UpdateRole - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getUser(ctx, "UpdateRole", req.TargetID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateRole: user=%s now has role=%s", updated.ID, updated.Role)
	return models.FromDomainUser(updated), nil
}

// Delete удаляет профиль другого пользователя (только SUPER_ADMIN, не себя)
func (s *Service) Delete(ctx context.Context, actorID, targetID string) error {
	s.logger.Info("Delete: user=%s deletes user=%s", actorID, targetID)

	if actorID == targetID {
		s.logger.Warn("Delete: user=%s tried to delete own account", actorID)
		return ErrSelfModification
	}

	if err := s.checkPermission(ctx, actorID, domain.ActionDeleteUsers); err != nil {
		s.logger.Warn("Delete: access denied for user=%s", actorID)
		return err
	}

	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		return s.userRepo.Delete(ctx, targetID)
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("Delete: repository error for user=%s: %v", targetID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Provision выдает роль в обход проверок прав. Вызывается только из cmd/provision.
// Если профиля нет, он создается с email из аргумента.
func (s *Service) Provision(ctx context.Context, identity domain.Identity, role domain.Role) (*models.UserResponse, error) {
	if identity.UserID == "" || !role.IsValid() {
		return nil, fmt.Errorf("%w: user id and a valid role are required", ErrInvalidInput)
	}

	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		return s.userRepo.UpdateRole(ctx, identity.UserID, role)
	})
	if errors.Is(err, userRepo.ErrUserNotFound) {
		email := s.normalizeEmail(identity.Email)
		user := &domain.User{
			ID:        identity.UserID,
			Name:      NameFromEmail(email),
			Email:     email,
			Role:      role,
			CreatedAt: s.timeProvider.Now(),
		}
		err = s.retrier.Do(ctx, func(ctx context.Context) error {
			_, err := s.userRepo.Create(ctx, user)
			return err
		})
	}
	if err != nil {
		s.logger.Error("Provision: failed for user=%s: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: Provision - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Provision: user=%s has role=%s", identity.UserID, role)
	return s.Me(ctx, identity.UserID)
}

// NameFromEmail имя по умолчанию: локальная часть email в верхнем регистре
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.TrimSpace(local)
	if local == "" {
		return fallbackName
	}
	// Длина считается в символах, как в валидации имени
	if runes := []rune(local); len(runes) > domain.MaxNameLength {
		local = string(runes[:domain.MaxNameLength])
	}
	return strings.ToUpper(local)
}

// normalizeEmail дописывает домен по умолчанию к логину без "@"
func (s *Service) normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" || strings.Contains(email, "@") || s.defaultEmailDomain == "" {
		return email
	}
	return email + "@" + s.defaultEmailDomain
}

func (s *Service) getUser(ctx context.Context, op, id string) (*domain.User, error) {
	var user *domain.User
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user=%s not found", op, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return user, nil
}

func (s *Service) checkPermission(ctx context.Context, actorID string, action domain.Action) error {
	actor, err := s.getUser(ctx, "checkPermission", actorID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrAccessDenied
		}
		return err
	}
	if !actor.Can(action) {
		return ErrAccessDenied
	}
	return nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
