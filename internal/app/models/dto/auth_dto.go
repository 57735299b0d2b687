package dto

import "github.com/selim/alumnihub/internal/app/models"

// RegisterRequest represents a registration payload
type RegisterRequest struct {
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required"`
	FirstName string          `json:"firstName" binding:"required"`
	LastName  string          `json:"lastName" binding:"required"`
	Role      models.RoleType `json:"role" binding:"required"`
}

// RegisterResponse returns the created account id
type RegisterResponse struct {
	UserID int64  `json:"userId" example:"1"`
	Email  string `json:"email" example:"user@example.com"`
}

// LoginRequest represents a login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token set. CSRFToken must be echoed in
// the X-CSRF-Token header on every mutating request.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	CSRFToken    string `json:"csrfToken"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
	UserID       int64  `json:"userId" example:"1"`
	Role         string `json:"role" example:"student"`
}

// RefreshTokenRequest represents a token refresh payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
