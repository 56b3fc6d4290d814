package models

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=225"`
}

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HashPasswordRequest is the form accepted by the hash-password utility.
type HashPasswordRequest struct {
	Password string `form:"password" validate:"required,min=6"`
}

// HashPasswordResponse carries a precomputed hash for manual user insertion.
type HashPasswordResponse struct {
	OriginalPassword string  `json:"original_password"`
	HashedPassword   string  `json:"hashed_password"`
	Warning          *string `json:"warning"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
