package dto

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
