package users

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-BarberBooking/internal/service/users/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/retry"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newService(repo *mockUserRepo) *Service {
	svc := NewService(repo, retry.NoRetry{}, "student.ukm.my", logger.NewNop())
	svc.timeProvider = fixedClock{now: time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC)}
	return svc
}

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "A123456", NameFromEmail("a123456@student.ukm.my"))
	assert.Equal(t, "ALI", NameFromEmail("ali"))
	assert.Equal(t, "STUDENT", NameFromEmail(""))
	assert.Equal(t, "STUDENT", NameFromEmail("@ukm.my"))

	t.Run("long multibyte local part is cut on a character boundary", func(t *testing.T) {
		local := strings.Repeat("a", domain.MaxNameLength-1) + "ö" + "tail"

		name := NameFromEmail(local + "@ukm.my")

		assert.True(t, utf8.ValidString(name))
		assert.Equal(t, domain.MaxNameLength, utf8.RuneCountInString(name))
		assert.True(t, strings.HasSuffix(name, "Ö"))
	})
}

func TestRegister(t *testing.T) {
	t.Run("creates student profile from identity", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("Create", mock.Anything, mock.Anything).Return(&domain.User{
			ID: "uid-1", Name: "A123456", Email: "a123456@student.ukm.my", Role: domain.RoleStudent,
		}, nil)

		resp, err := newService(repo).Register(context.Background(),
			domain.Identity{UserID: "uid-1", Email: "a123456"},
			&models.RegisterRequest{Telegram: ptr.Ptr(" @boss_manap "), Phone: ptr.Ptr("  ")},
		)

		require.NoError(t, err)
		assert.Equal(t, "STUDENT", resp.Role)

		created := repo.Calls[0].Arguments.Get(1).(*domain.User)
		assert.Equal(t, "A123456", created.Name)
		assert.Equal(t, "a123456@student.ukm.my", created.Email)
		assert.Equal(t, "@boss_manap", *created.Telegram)
		assert.Nil(t, created.Phone)
		// Служебные никнеймы больше не дают прав
		assert.Equal(t, domain.RoleStudent, created.Role)
	})

	t.Run("unknown college", func(t *testing.T) {
		repo := &mockUserRepo{}

		_, err := newService(repo).Register(context.Background(),
			domain.Identity{UserID: "uid-1", Email: "ali@student.ukm.my"},
			&models.RegisterRequest{College: ptr.Ptr("Hogwarts")},
		)

		require.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("already registered", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, userRepo.ErrUserExists)

		_, err := newService(repo).Register(context.Background(),
			domain.Identity{UserID: "uid-1", Email: "ali@student.ukm.my"},
			&models.RegisterRequest{},
		)

		require.ErrorIs(t, err, ErrUserExists)
	})
}

func TestUpdateRole(t *testing.T) {
	root := &domain.User{ID: "root", Role: domain.RoleSuperAdmin}
	admin := &domain.User{ID: "admin", Role: domain.RoleAdmin}

	t.Run("super admin promotes another user", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("GetByID", mock.Anything, "root").Return(root, nil)
		repo.On("UpdateRole", mock.Anything, "u-1", domain.RoleAdmin).Return(nil)
		repo.On("GetByID", mock.Anything, "u-1").Return(&domain.User{ID: "u-1", Role: domain.RoleAdmin}, nil)

		resp, err := newService(repo).UpdateRole(context.Background(), &models.UpdateRoleRequest{
			ActorID: "root", TargetID: "u-1", Role: "admin",
		})

		require.NoError(t, err)
		assert.Equal(t, "ADMIN", resp.Role)
	})

	t.Run("admin cannot manage roles", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("GetByID", mock.Anything, "admin").Return(admin, nil)

		_, err := newService(repo).UpdateRole(context.Background(), &models.UpdateRoleRequest{
			ActorID: "admin", TargetID: "u-1", Role: "SUPER_ADMIN",
		})

		require.ErrorIs(t, err, ErrAccessDenied)
		repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nobody changes own role", func(t *testing.T) {
		repo := &mockUserRepo{}

		_, err := newService(repo).UpdateRole(context.Background(), &models.UpdateRoleRequest{
			ActorID: "root", TargetID: "root", Role: "STUDENT",
		})

		require.ErrorIs(t, err, ErrSelfModification)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := newService(&mockUserRepo{}).UpdateRole(context.Background(), &models.UpdateRoleRequest{
			ActorID: "root", TargetID: "u-1", Role: "BARBER",
		})

		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("target missing", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("GetByID", mock.Anything, "root").Return(root, nil)
		repo.On("UpdateRole", mock.Anything, "ghost", domain.RoleAdmin).Return(userRepo.ErrUserNotFound)

		_, err := newService(repo).UpdateRole(context.Background(), &models.UpdateRoleRequest{
			ActorID: "root", TargetID: "ghost", Role: "ADMIN",
		})

		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDelete(t *testing.T) {
	root := &domain.User{ID: "root", Role: domain.RoleSuperAdmin}

	t.Run("super admin deletes another user", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("GetByID", mock.Anything, "root").Return(root, nil)
		repo.On("Delete", mock.Anything, "u-1").Return(nil)

		require.NoError(t, newService(repo).Delete(context.Background(), "root", "u-1"))
		repo.AssertExpectations(t)
	})

	t.Run("nobody deletes themselves", func(t *testing.T) {
		repo := &mockUserRepo{}

		err := newService(repo).Delete(context.Background(), "root", "root")

		require.ErrorIs(t, err, ErrSelfModification)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("student denied", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("GetByID", mock.Anything, "u-2").Return(&domain.User{ID: "u-2", Role: domain.RoleStudent}, nil)

		err := newService(repo).Delete(context.Background(), "u-2", "u-1")

		require.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestList(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByID", mock.Anything, "admin").Return(&domain.User{ID: "admin", Role: domain.RoleAdmin}, nil)
	repo.On("List", mock.Anything).Return([]*domain.User{
		{ID: "admin", Role: domain.RoleAdmin},
		{ID: "u-1", Role: domain.RoleStudent},
	}, nil)

	resp, err := newService(repo).List(context.Background(), "admin")

	require.NoError(t, err)
	assert.Len(t, resp.Users, 2)
}

func TestMe_StoreFailure(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByID", mock.Anything, "u-1").Return(nil, errors.New("timeout"))

	_, err := newService(repo).Me(context.Background(), "u-1")

	require.ErrorIs(t, err, ErrInternal)
}

func TestProvision(t *testing.T) {
	t.Run("promotes existing profile", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("UpdateRole", mock.Anything, "uid-1", domain.RoleSuperAdmin).Return(nil)
		repo.On("GetByID", mock.Anything, "uid-1").Return(&domain.User{ID: "uid-1", Role: domain.RoleSuperAdmin}, nil)

		resp, err := newService(repo).Provision(context.Background(), domain.Identity{UserID: "uid-1"}, domain.RoleSuperAdmin)

		require.NoError(t, err)
		assert.Equal(t, "SUPER_ADMIN", resp.Role)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates missing profile", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("UpdateRole", mock.Anything, "uid-2", domain.RoleAdmin).Return(userRepo.ErrUserNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleAdmin && u.Email == "staff@student.ukm.my" && u.Name == "STAFF"
		})).Return(&domain.User{ID: "uid-2", Role: domain.RoleAdmin}, nil)
		repo.On("GetByID", mock.Anything, "uid-2").Return(&domain.User{ID: "uid-2", Role: domain.RoleAdmin}, nil)

		resp, err := newService(repo).Provision(context.Background(), domain.Identity{UserID: "uid-2", Email: "staff"}, domain.RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, "ADMIN", resp.Role)
		repo.AssertExpectations(t)
	})
}
