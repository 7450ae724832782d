package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spec-kit/user-service/internal/domain"
)

// RoleRepository manages role reference data.
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	Upsert(ctx context.Context, role *domain.Role) error
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository constructs repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var rec roleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		return nil, translate(err)
	}
	role := toDomainRole(rec)
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	var rec roleModel
	if err := r.db.WithContext(ctx).Where("name = ?", string(name)).Take(&rec).Error; err != nil {
		return nil, translate(err)
	}
	role := toDomainRole(rec)
	return &role, nil
}

// Upsert creates the role when its name is free and fills in the stored id.
func (r *roleRepository) Upsert(ctx context.Context, role *domain.Role) error {
	rec := roleModel{
		ID:          uuid.NewString(),
		Name:        string(role.Name),
		Description: role.Description,
		CreatedAt:   time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rec).Error
	if err != nil {
		return translate(err)
	}

	stored, err := r.GetByName(ctx, role.Name)
	if err != nil {
		return err
	}
	*role = *stored
	return nil
}
