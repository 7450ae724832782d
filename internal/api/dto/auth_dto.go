package dto

// LoginRequest payload for POST /auth/login. Either email or phone
// identifies the account.
type LoginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// MessageResponse is the body of simple acknowledgements.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
