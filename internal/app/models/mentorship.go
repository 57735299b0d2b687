package models

import "time"

// MentorshipMatch represents a connection request between a student and an alumni.
// At most one row exists per (student, alumni) pair; a rejected row is revived
// to pending instead of duplicated.
type MentorshipMatch struct {
	ID          int64       `json:"id" db:"id"`
	StudentID   int64       `json:"studentId" db:"student_id"`
	AlumniID    int64       `json:"alumniId" db:"alumni_id"`
	Status      MatchStatus `json:"status" db:"status"`
	RequestedAt time.Time   `json:"requestedAt" db:"requested_at"`

	// Related entities
	Student *User `json:"student,omitempty"`
	Alumni  *User `json:"alumni,omitempty"`
}

// IsParticipant reports whether the given user is one of the two stored
// participants of the match.
func (m *MentorshipMatch) IsParticipant(userID int64) bool {
	return m.StudentID == userID || m.AlumniID == userID
}

// Notification represents a message queued for a user
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type" db:"notification_type"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Notification types
const (
	NotificationMentorshipRequest = "mentorship_request"
)
