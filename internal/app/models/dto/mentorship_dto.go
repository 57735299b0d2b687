package dto

import "time"

// CandidateFilterRequest carries the optional candidate search filters
type CandidateFilterRequest struct {
	Major    *string
	Location *string
	Name     *string
}

// CandidateResponse is one entry in the mentorship candidate listing,
// annotated with the compatibility score against the viewer.
type CandidateResponse struct {
	UserID          int64   `json:"userId"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Major           string  `json:"major"`
	Location        string  `json:"location"`
	CurrentPosition string  `json:"currentPosition"`
	Company         string  `json:"company"`
	GraduationYear  *int    `json:"graduationYear,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	MatchScore      int     `json:"matchScore" example:"80"`
	ConnectionStatus string `json:"connectionStatus,omitempty" example:"pending"`
}

// SendRequestRequest represents a mentorship request payload
type SendRequestRequest struct {
	AlumniID int64 `json:"alumniId" binding:"required"`
}

// RespondRequest represents an accept/reject decision on a pending request
type RespondRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

// MatchResponse represents a mentorship match in API responses
type MatchResponse struct {
	ID          int64              `json:"id"`
	StudentID   int64              `json:"studentId"`
	AlumniID    int64              `json:"alumniId"`
	Status      string             `json:"status"`
	RequestedAt time.Time          `json:"requestedAt"`
	Student     *UserBasicResponse `json:"student,omitempty"`
	Alumni      *UserBasicResponse `json:"alumni,omitempty"`
}

// ConnectionsResponse groups a user's matches by lifecycle stage
type ConnectionsResponse struct {
	Pending []MatchResponse `json:"pending"`
	Active  []MatchResponse `json:"active"`
	Past    []MatchResponse `json:"past"`
}

// RequestResultResponse is the AJAX-style {success, message} body returned by
// the mentorship request endpoint.
type RequestResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
