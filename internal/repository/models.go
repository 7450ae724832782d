package repository

import (
	"time"

	"github.com/spec-kit/user-service/internal/domain"
)

type roleModel struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (roleModel) TableName() string { return "roles" }

type userModel struct {
	ID           string     `gorm:"column:id;type:uuid;primaryKey"`
	FirstName    string     `gorm:"column:first_name"`
	LastName     string     `gorm:"column:last_name"`
	Email        string     `gorm:"column:email"`
	Phone        *string    `gorm:"column:phone"`
	PasswordHash string     `gorm:"column:password_hash"`
	ProfileImage *string    `gorm:"column:profile_image"`
	DOB          *time.Time `gorm:"column:dob;type:date"`
	RoleID       string     `gorm:"column:role_id;type:uuid"`
	Role         roleModel  `gorm:"foreignKey:RoleID;references:ID"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

// safeUserColumns never includes the password hash.
var safeUserColumns = []string{
	"id", "first_name", "last_name", "email", "phone",
	"profile_image", "dob", "role_id", "created_at", "updated_at",
}

var credentialUserColumns = append(append([]string{}, safeUserColumns...), "password_hash")

func toDomainRole(m roleModel) domain.Role {
	return domain.Role{ID: m.ID, Name: domain.RoleName(m.Name), Description: m.Description}
}

func toDomainUser(m userModel) domain.User {
	return domain.User{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		ProfileImage: m.ProfileImage,
		DOB:          m.DOB,
		Role:         toDomainRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		ProfileImage: u.ProfileImage,
		DOB:          u.DOB,
		RoleID:       u.Role.ID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
