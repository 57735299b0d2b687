package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64      `json:"id" db:"id" example:"1"`
	Email     string     `json:"email" db:"email" example:"user@example.com"`
	Password  string     `json:"-" db:"password"`
	Role      RoleType   `json:"role" db:"role" example:"student"`
	Status    UserStatus `json:"status" db:"status" example:"active"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Profile *Profile `json:"profile,omitempty"`
}

// RefreshToken defines a stored refresh token for session renewal
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
