package models

import "time"

// Event defines the event model based on the 'events' table.
// MaxAttendees of 0 means unlimited capacity.
type Event struct {
	ID           int64     `json:"id" db:"id"`
	CreatorID    int64     `json:"creatorId" db:"creator_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	StartsAt     time.Time `json:"startsAt" db:"starts_at"`
	Location     string    `json:"location" db:"location"`
	EventType    string    `json:"eventType" db:"event_type"`
	MaxAttendees int       `json:"maxAttendees" db:"max_attendees"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Creator *User `json:"creator,omitempty"`
}

// EventRegistration is a (event, user) registration row. At most one row
// exists per pair; cancel and re-register flip the status in place.
type EventRegistration struct {
	ID           int64              `json:"id" db:"id"`
	EventID      int64              `json:"eventId" db:"event_id"`
	UserID       int64              `json:"userId" db:"user_id"`
	Status       RegistrationStatus `json:"status" db:"status"`
	RegisteredAt time.Time          `json:"registeredAt" db:"registered_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}

// Event types accepted at creation time
var EventTypes = []string{"networking", "workshop", "seminar", "career-fair", "social"}

// IsValidEventType reports whether t is one of the accepted event types.
func IsValidEventType(t string) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}
