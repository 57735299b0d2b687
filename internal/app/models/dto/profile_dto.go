package dto

import (
	"time"

	"github.com/selim/alumnihub/internal/app/models"
)

// UpdateProfileRequest represents a profile update payload. Unknown fields
// are rejected at the boundary; identity comes from the session, never here.
type UpdateProfileRequest struct {
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Major           string `json:"major"`
	GraduationYear  *int   `json:"graduationYear"`
	CurrentPosition string `json:"currentPosition"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	Bio             string `json:"bio"`
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	UserID          int64           `json:"userId"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Major           string          `json:"major"`
	GraduationYear  *int            `json:"graduationYear,omitempty"`
	CurrentPosition string          `json:"currentPosition"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	Bio             string          `json:"bio"`
	Skills          []SkillResponse `json:"skills,omitempty"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// AddSkillRequest represents a skill creation payload
type AddSkillRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Proficiency models.ProficiencyLevel `json:"proficiency" binding:"required"`
}

// SkillResponse represents a skill in API responses
type SkillResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// UserBasicResponse is the minimal user representation embedded in other
// responses.
type UserBasicResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}
