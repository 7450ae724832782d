package domain

import "time"

// User is the domain model for registered accounts.
type User struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone,omitempty"`
	PasswordHash string     `json:"-"`
	ProfileImage *string    `json:"profileImage"`
	DOB          *time.Time `json:"dob,omitempty"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Identity returns the authenticated projection of the user.
func (u *User) Identity() Identity {
	return Identity{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		Role:         RoleRef{ID: u.Role.ID, Name: u.Role.Name},
	}
}

// SortOrder controls listing direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder defaults anything other than desc to asc.
func ParseSortOrder(v string) SortOrder {
	if SortOrder(v) == SortDesc {
		return SortDesc
	}
	return SortAsc
}
