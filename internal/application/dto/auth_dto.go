package dto

// LoginRequest body untuk POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse representasi user tanpa field sensitif.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse token + user setelah login sukses.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
