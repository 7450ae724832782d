package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
)

type fakeRoles struct {
	byName map[domain.RoleName]domain.Role
}

func (f *fakeRoles) GetByID(_ context.Context, id string) (*domain.Role, error) {
	for _, r := range f.byName {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRoles) GetByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	if r, ok := f.byName[name]; ok {
		return &r, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRoles) Upsert(_ context.Context, role *domain.Role) error {
	if existing, ok := f.byName[role.Name]; ok {
		*role = existing
		return nil
	}
	role.ID = "role-" + string(role.Name)
	f.byName[role.Name] = *role
	return nil
}

type fakeUsers struct {
	byEmail map[string]domain.User
}

func (f *fakeUsers) Create(ctx context.Context, user *domain.User) error {
	if created, _ := f.Upsert(ctx, user); !created {
		return repository.ErrDuplicate
	}
	return nil
}

func (f *fakeUsers) Upsert(_ context.Context, user *domain.User) (bool, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return false, nil
	}
	user.ID = "user-" + user.Email
	f.byEmail[user.Email] = *user
	return true, nil
}

func (f *fakeUsers) GetByID(context.Context, string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) FindByEmailOrPhone(_ context.Context, email, _ string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) ListAll(context.Context) ([]domain.User, error) { return nil, nil }

func (f *fakeUsers) ListPage(context.Context, int, int, domain.SortOrder) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func TestSeeder_Idempotent(t *testing.T) {
	roles := &fakeRoles{byName: map[domain.RoleName]domain.Role{}}
	users := &fakeUsers{byEmail: map[string]domain.User{}}
	hasher := auth.NewHasher(4)
	s := NewSeeder(roles, users, hasher, nil)

	first, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Roles: 3, UsersCreated: 4}, first)

	admin := users.byEmail["sharath@example.com"]
	assert.Equal(t, domain.RoleAdmin, admin.Role.Name)
	assert.Equal(t, "role-ADMIN", admin.Role.ID)
	assert.True(t, hasher.Verify(DefaultPassword, admin.PasswordHash))
	assert.Equal(t, domain.RoleUser, users.byEmail["john@example.com"].Role.Name)

	second, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Roles: 3, UsersSkipped: 4}, second)
	assert.Len(t, roles.byName, 3)
	assert.Equal(t, admin.PasswordHash, users.byEmail["sharath@example.com"].PasswordHash, "existing rows are never overwritten")
}
