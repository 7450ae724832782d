package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
)

type stubUserRepo struct {
	mu      sync.Mutex
	users   []domain.User
	findErr error
	calls   int
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *stubUserRepo) Upsert(ctx context.Context, user *domain.User) (bool, error) {
	if err := r.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicate {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			clone := u
			clone.PasswordHash = ""
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) FindByEmailOrPhone(_ context.Context, email, phone string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if (email != "" && u.Email == email) || (phone != "" && u.Phone != nil && *u.Phone == phone) {
			clone := u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.User(nil), r.users...), nil
}

func (r *stubUserRepo) ListPage(_ context.Context, offset, limit int, order domain.SortOrder) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sorted := append([]domain.User(nil), r.users...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == domain.SortDesc {
			return sorted[i].FirstName > sorted[j].FirstName
		}
		return sorted[i].FirstName < sorted[j].FirstName
	})
	total := int64(len(sorted))
	if offset >= len(sorted) {
		return []domain.User{}, total, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], total, nil
}

type stubRoleRepo struct {
	roles map[string]domain.Role
}

func newStubRoleRepo(roles ...domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]domain.Role)}
	for _, role := range roles {
		r.roles[role.ID] = role
	}
	return r
}

func (r *stubRoleRepo) GetByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &role, nil
}

func (r *stubRoleRepo) GetByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			clone := role
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubRoleRepo) Upsert(_ context.Context, role *domain.Role) error {
	if existing, err := r.GetByName(context.Background(), role.Name); err == nil {
		*role = *existing
		return nil
	}
	if role.ID == "" {
		role.ID = "role-" + string(role.Name)
	}
	r.roles[role.ID] = *role
	return nil
}

type stubRevoker struct {
	revoked map[string]time.Time
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if r.revoked == nil {
		r.revoked = make(map[string]time.Time)
	}
	r.revoked[tokenID] = expiresAt
	return nil
}

func strPtr(s string) *string { return &s }
