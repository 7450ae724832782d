package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
)

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "Password@123"

// UserFixture describes a seeded account.
type UserFixture struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      domain.RoleName
}

// DefaultRoles are the provisioned roles.
var DefaultRoles = []domain.Role{
	{Name: domain.RoleUser, Description: "Regular user"},
	{Name: domain.RoleAdmin, Description: "System administrator"},
	{Name: domain.RoleSpecial, Description: "Special privileged user"},
}

// DefaultUsers are the demo accounts.
var DefaultUsers = []UserFixture{
	{FirstName: "Sharath", LastName: "Shankar", Email: "sharath@example.com", Phone: "9999999991", Role: domain.RoleAdmin},
	{FirstName: "Ravi", LastName: "Kumar", Email: "ravi@example.com", Phone: "9999999992", Role: domain.RoleUser},
	{FirstName: "Anita", LastName: "Sharma", Email: "anita@example.com", Phone: "9999999993", Role: domain.RoleUser},
	{FirstName: "John", LastName: "Doe", Email: "john@example.com", Phone: "9999999994", Role: domain.RoleUser},
}

// Summary reports what a run changed.
type Summary struct {
	Roles        int
	UsersCreated int
	UsersSkipped int
}

// Seeder provisions reference roles and demo users without overwriting
// existing rows.
type Seeder struct {
	roles  repository.RoleRepository
	users  repository.UserRepository
	hasher *auth.Hasher
	logger *zap.Logger
}

// NewSeeder constructs a seeder.
func NewSeeder(roles repository.RoleRepository, users repository.UserRepository, hasher *auth.Hasher, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{roles: roles, users: users, hasher: hasher, logger: logger}
}

// Run seeds roles first, then users. It is safe to run repeatedly.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	roleIDs := make(map[domain.RoleName]domain.Role, len(DefaultRoles))
	for _, r := range DefaultRoles {
		role := r
		if err := s.roles.Upsert(ctx, &role); err != nil {
			return summary, fmt.Errorf("seed role %s: %w", r.Name, err)
		}
		roleIDs[role.Name] = role
		summary.Roles++
	}
	s.logger.Info("roles seeded", zap.Int("count", summary.Roles))

	hash, err := s.hasher.Hash(DefaultPassword)
	if err != nil {
		return summary, fmt.Errorf("hash seed password: %w", err)
	}

	for _, fx := range DefaultUsers {
		role, ok := roleIDs[fx.Role]
		if !ok {
			return summary, fmt.Errorf("seed user %s: role %s not seeded", fx.Email, fx.Role)
		}
		phone := fx.Phone
		created, err := s.users.Upsert(ctx, &domain.User{
			FirstName:    fx.FirstName,
			LastName:     fx.LastName,
			Email:        fx.Email,
			Phone:        &phone,
			PasswordHash: hash,
			Role:         role,
		})
		if err != nil {
			return summary, fmt.Errorf("seed user %s: %w", fx.Email, err)
		}
		if created {
			summary.UsersCreated++
		} else {
			summary.UsersSkipped++
		}
	}
	s.logger.Info("users seeded",
		zap.Int("created", summary.UsersCreated),
		zap.Int("skipped", summary.UsersSkipped))
	return summary, nil
}
