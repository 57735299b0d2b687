package dto

import "time"

// CreateEventRequest represents an event creation payload
type CreateEventRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	StartsAt     time.Time `json:"startsAt" binding:"required"`
	Location     string    `json:"location" binding:"required"`
	EventType    string    `json:"eventType" binding:"required"`
	MaxAttendees int       `json:"maxAttendees" binding:"min=0"`
}

// EventFilterRequest carries the optional event listing filters
type EventFilterRequest struct {
	EventType *string
	View      string // "upcoming" or "past"
	Page      int
	PageSize  int
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID              int64              `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	StartsAt        time.Time          `json:"startsAt"`
	Location        string             `json:"location"`
	EventType       string             `json:"eventType"`
	MaxAttendees    int                `json:"maxAttendees"`
	RegisteredCount int                `json:"registeredCount"`
	SpotsLeft       *int               `json:"spotsLeft,omitempty"`
	Creator         *UserBasicResponse `json:"creator,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// EventListResponse is the paginated event listing
type EventListResponse struct {
	Events         []EventResponse `json:"events"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// EventDetailResponse adds the attendee list to the event representation
type EventDetailResponse struct {
	EventResponse
	Attendees []AttendeeResponse `json:"attendees"`
}

// AttendeeResponse is one registered user on an event detail page
type AttendeeResponse struct {
	UserID       int64     `json:"userId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	RegisteredAt time.Time `json:"registeredAt"`
}
