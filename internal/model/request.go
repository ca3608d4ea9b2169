package model

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// AuthResponse is returned from both register and login.
type AuthResponse struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}
