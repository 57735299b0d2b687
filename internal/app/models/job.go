package models

import "time"

// JobPosting defines the job posting model based on the 'job_postings' table.
// Only the posting alumni may close or reopen it; non-owners only ever see
// active postings.
type JobPosting struct {
	ID                  int64      `json:"id" db:"id"`
	PosterID            int64      `json:"posterId" db:"poster_id"`
	Title               string     `json:"title" db:"title"`
	Company             string     `json:"company" db:"company"`
	Location            string     `json:"location" db:"location"`
	JobType             string     `json:"jobType" db:"job_type"`
	Description         string     `json:"description" db:"description"`
	Requirements        string     `json:"requirements" db:"requirements"`
	SalaryRange         string     `json:"salaryRange" db:"salary_range"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty" db:"application_deadline"`
	Status              JobStatus  `json:"status" db:"status"`
	PostedAt            time.Time  `json:"postedAt" db:"posted_at"`

	// Related entities
	Poster *User `json:"poster,omitempty"`
}

// Job types accepted at creation time
var JobTypes = []string{"full-time", "part-time", "internship", "contract"}

// IsValidJobType reports whether t is one of the accepted job types.
func IsValidJobType(t string) bool {
	for _, v := range JobTypes {
		if v == t {
			return true
		}
	}
	return false
}
