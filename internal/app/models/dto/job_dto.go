package dto

import "time"

// CreateJobRequest represents a job posting creation payload
type CreateJobRequest struct {
	Title               string     `json:"title" binding:"required"`
	Company             string     `json:"company" binding:"required"`
	Location            string     `json:"location" binding:"required"`
	JobType             string     `json:"jobType" binding:"required"`
	Description         string     `json:"description" binding:"required"`
	Requirements        string     `json:"requirements"`
	SalaryRange         string     `json:"salaryRange"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
}

// JobFilterRequest carries the optional job listing filters
type JobFilterRequest struct {
	Location *string
	JobType  *string
	Search   *string
	Page     int
	PageSize int
}

// JobResponse represents a job posting in API responses
type JobResponse struct {
	ID                  int64              `json:"id"`
	Title               string             `json:"title"`
	Company             string             `json:"company"`
	Location            string             `json:"location"`
	JobType             string             `json:"jobType"`
	Description         string             `json:"description"`
	Requirements        string             `json:"requirements,omitempty"`
	SalaryRange         string             `json:"salaryRange,omitempty"`
	ApplicationDeadline *time.Time         `json:"applicationDeadline,omitempty"`
	Status              string             `json:"status"`
	Poster              *UserBasicResponse `json:"poster,omitempty"`
	PostedAt            time.Time          `json:"postedAt"`
}

// JobListResponse is the paginated job listing
type JobListResponse struct {
	Jobs           []JobResponse  `json:"jobs"`
	PaginationInfo PaginationInfo `json:"pagination"`
}
