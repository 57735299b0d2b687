package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAlumni  RoleType = "alumni"
	RoleAdmin   RoleType = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleAlumni, RoleAdmin:
		return true
	}
	return false
}

// UserStatus defines the account status
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// IsValid reports whether the status is one of the known statuses.
func (s UserStatus) IsValid() bool {
	return s == UserActive || s == UserInactive
}

// MatchStatus defines the mentorship match lifecycle state
type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchActive    MatchStatus = "active"
	MatchRejected  MatchStatus = "rejected"
	MatchCompleted MatchStatus = "completed"
)

// IsValid reports whether the status is one of the known match states.
func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchPending, MatchActive, MatchRejected, MatchCompleted:
		return true
	}
	return false
}

// RegistrationStatus defines the event registration state
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationCancelled  RegistrationStatus = "cancelled"
)

// JobStatus defines the job posting state
type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

// ProficiencyLevel defines the skill proficiency scale
type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
)

// IsValid reports whether the level is one of the known proficiency levels.
func (p ProficiencyLevel) IsValid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced:
		return true
	}
	return false
}
