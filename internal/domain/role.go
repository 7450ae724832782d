package domain

import "strings"

// RoleName is the closed set of access tiers a user can hold.
type RoleName string

const (
	RoleUser    RoleName = "USER"
	RoleAdmin   RoleName = "ADMIN"
	RoleSpecial RoleName = "SPECIAL"
)

// AllRoles lists every known role in provisioning order.
var AllRoles = []RoleName{RoleUser, RoleAdmin, RoleSpecial}

// ParseRoleName maps a stored role name onto the enum.
func ParseRoleName(name string) (RoleName, bool) {
	switch RoleName(strings.ToUpper(strings.TrimSpace(name))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSpecial:
		return RoleSpecial, true
	default:
		return "", false
	}
}

func (r RoleName) String() string {
	return string(r)
}

// Role is reference data describing an access tier.
type Role struct {
	ID          string   `json:"id"`
	Name        RoleName `json:"name"`
	Description string   `json:"description,omitempty"`
}
