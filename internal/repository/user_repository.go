package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spec-kit/user-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Upsert(ctx context.Context, user *domain.User) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	ListPage(ctx context.Context, offset, limit int, order domain.SortOrder) ([]domain.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a gorm-backed implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	rec := fromDomainUser(user)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Upsert inserts the user unless the email is taken; it never overwrites.
func (r *userRepository) Upsert(ctx context.Context, user *domain.User) (bool, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	rec := fromDomainUser(user)
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&rec)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var rec userModel
	err := r.db.WithContext(ctx).
		Select(safeUserColumns).
		Preload("Role").
		Where("id = ?", id).
		Take(&rec).Error
	if err != nil {
		return nil, translate(err)
	}
	user := toDomainUser(rec)
	return &user, nil
}

// FindByEmailOrPhone matches on either channel and includes the password hash.
func (r *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	q := r.db.WithContext(ctx).Select(credentialUserColumns).Preload("Role")
	switch {
	case email != "" && phone != "":
		q = q.Where("email = ? OR phone = ?", email, phone)
	case email != "":
		q = q.Where("email = ?", email)
	case phone != "":
		q = q.Where("phone = ?", phone)
	default:
		return nil, errors.New("email or phone required")
	}

	var rec userModel
	if err := q.Take(&rec).Error; err != nil {
		return nil, translate(err)
	}
	user := toDomainUser(rec)
	return &user, nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	var recs []userModel
	err := r.db.WithContext(ctx).
		Select(safeUserColumns).
		Preload("Role").
		Order("created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainUsers(recs), nil
}

// ListPage reads one page ordered by first name and the total row count
// inside a single read-only snapshot.
func (r *userRepository) ListPage(ctx context.Context, offset, limit int, order domain.SortOrder) ([]domain.User, int64, error) {
	var (
		recs  []userModel
		total int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select(safeUserColumns).
			Preload("Role").
			Order(clause.OrderByColumn{Column: clause.Column{Name: "first_name"}, Desc: order == domain.SortDesc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
			Offset(offset).
			Limit(limit).
			Find(&recs).Error; err != nil {
			return err
		}
		return tx.Model(&userModel{}).Count(&total).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, translate(err)
	}
	return toDomainUsers(recs), total, nil
}

func toDomainUsers(recs []userModel) []domain.User {
	users := make([]domain.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, toDomainUser(rec))
	}
	return users
}
