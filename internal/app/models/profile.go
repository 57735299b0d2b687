package models

import "time"

// Profile defines the profile model based on the 'profiles' table.
// One-to-one with User; mutated by the owner only.
type Profile struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"userId" db:"user_id"`
	FirstName       string    `json:"firstName" db:"first_name"`
	LastName        string    `json:"lastName" db:"last_name"`
	Major           string    `json:"major" db:"major"`
	GraduationYear  *int      `json:"graduationYear,omitempty" db:"graduation_year"`
	CurrentPosition string    `json:"currentPosition" db:"current_position"`
	Company         string    `json:"company" db:"company"`
	Location        string    `json:"location" db:"location"`
	Bio             string    `json:"bio" db:"bio"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Skills []*Skill `json:"skills,omitempty"`
}

// Skill defines a (user, name, proficiency) tuple from the 'skills' table
type Skill struct {
	ID          int64            `json:"id" db:"id"`
	UserID      int64            `json:"userId" db:"user_id"`
	Name        string           `json:"name" db:"name"`
	Proficiency ProficiencyLevel `json:"proficiency" db:"proficiency"`
}
