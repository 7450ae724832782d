package domain

// RoleRef is the compact role projection embedded in identities and tokens.
type RoleRef struct {
	ID   string   `json:"id"`
	Name RoleName `json:"name"`
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profileImage"`
	Role         RoleRef `json:"role"`
}

// HasRole reports whether the identity holds one of the given roles.
func (i Identity) HasRole(roles ...RoleName) bool {
	for _, r := range roles {
		if i.Role.Name == r {
			return true
		}
	}
	return false
}
