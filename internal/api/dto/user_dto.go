package dto

import (
	"fmt"
	"strings"
	"time"
)

// CreateUserRequest payload for POST /user.
type CreateUserRequest struct {
	FirstName       string  `json:"firstName" validate:"required"`
	LastName        string  `json:"lastName" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           *string `json:"phone" validate:"omitempty,phone"`
	Password        string  `json:"password" validate:"required,min=8"`
	ConfirmPassword string  `json:"confirmPassword" validate:"required,min=8,eqfield=Password"`
	DOB             *Date   `json:"dob"`
	ProfileImage    *string `json:"profileImage"`
	Role            string  `json:"role" validate:"required,uuid"`
}

// Date accepts either a calendar date or a full RFC 3339 timestamp.
type Date struct {
	time.Time
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// Ptr returns the time or nil when unset.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
