package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
	"github.com/selim/alumnihub/internal/pkg/helpers"
)

// JobService handles job posting operations
type JobService struct {
	jobStore JobStore
	logger   zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(jobStore JobStore, logger zerolog.Logger) *JobService {
	return &JobService{jobStore: jobStore, logger: logger}
}

// CreateJob creates a job posting owned by the caller
func (s *JobService) CreateJob(ctx context.Context, posterID int64, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if !models.IsValidJobType(req.JobType) {
		return nil, apperrors.NewBadRequestError("unknown job type")
	}
	if req.ApplicationDeadline != nil && req.ApplicationDeadline.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("application deadline cannot be in the past")
	}

	job := &models.JobPosting{
		PosterID:            posterID,
		Title:               strings.TrimSpace(req.Title),
		Company:             strings.TrimSpace(req.Company),
		Location:            strings.TrimSpace(req.Location),
		JobType:             req.JobType,
		Description:         strings.TrimSpace(req.Description),
		Requirements:        strings.TrimSpace(req.Requirements),
		SalaryRange:         strings.TrimSpace(req.SalaryRange),
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              models.JobActive,
	}

	id, err := s.jobStore.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("error creating job posting: %w", err)
	}
	job.ID = id

	s.logger.Info().Int64("jobId", id).Int64("posterId", posterID).Msg("Job posting created")

	return mapJobToResponse(job), nil
}

// ListJobs returns the filtered, paginated listing of active postings
func (s *JobService) ListJobs(ctx context.Context, filter *dto.JobFilterRequest) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobStore.ListActive(ctx, filter.Location, filter.JobType, filter.Search, filter.Page, filter.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing job postings: %w", err)
	}
	return mapJobListToResponse(jobs, total, filter.Page, filter.PageSize), nil
}

// ListOwnJobs returns all of the caller's postings regardless of status
func (s *JobService) ListOwnJobs(ctx context.Context, posterID int64, page, pageSize int) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobStore.ListByPoster(ctx, posterID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing job postings: %w", err)
	}
	return mapJobListToResponse(jobs, total, page, pageSize), nil
}

// GetJob returns one posting. Non-owners only ever see active postings.
func (s *JobService) GetJob(ctx context.Context, jobID, requesterID int64) (*dto.JobResponse, error) {
	job, err := s.jobStore.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving job posting: %w", err)
	}
	if job == nil {
		return nil, apperrors.ErrJobNotFound
	}
	if job.Status != models.JobActive && job.PosterID != requesterID {
		return nil, apperrors.ErrJobNotFound
	}
	return mapJobToResponse(job), nil
}

// CloseJob closes a posting. The update is guarded by the stored poster id,
// so a non-owner reaches a failure with the status unchanged.
func (s *JobService) CloseJob(ctx context.Context, jobID, actorID int64) error {
	return s.setJobStatus(ctx, jobID, actorID, models.JobClosed)
}

// ReopenJob reopens a closed posting, with the same ownership guard
func (s *JobService) ReopenJob(ctx context.Context, jobID, actorID int64) error {
	return s.setJobStatus(ctx, jobID, actorID, models.JobActive)
}

func (s *JobService) setJobStatus(ctx context.Context, jobID, actorID int64, status models.JobStatus) error {
	updated, err := s.jobStore.UpdateStatus(ctx, jobID, actorID, status)
	if err != nil {
		return fmt.Errorf("error updating job posting: %w", err)
	}
	if !updated {
		job, err := s.jobStore.GetByID(ctx, jobID)
		if err != nil {
			return fmt.Errorf("error retrieving job posting: %w", err)
		}
		if job == nil {
			return apperrors.ErrJobNotFound
		}
		return apperrors.ErrPermissionDenied
	}

	s.logger.Info().Int64("jobId", jobID).Str("status", string(status)).Msg("Job posting status changed")
	return nil
}

func mapJobListToResponse(jobs []*models.JobPosting, total int64, page, pageSize int) *dto.JobListResponse {
	resp := &dto.JobListResponse{
		Jobs:           make([]dto.JobResponse, 0, len(jobs)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, job := range jobs {
		resp.Jobs = append(resp.Jobs, *mapJobToResponse(job))
	}
	return resp
}

func mapJobToResponse(job *models.JobPosting) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:                  job.ID,
		Title:               job.Title,
		Company:             job.Company,
		Location:            job.Location,
		JobType:             job.JobType,
		Description:         job.Description,
		Requirements:        job.Requirements,
		SalaryRange:         job.SalaryRange,
		ApplicationDeadline: job.ApplicationDeadline,
		Status:              string(job.Status),
		PostedAt:            job.PostedAt,
	}
	if job.Poster != nil {
		resp.Poster = mapUserToBasicResponse(job.Poster)
	}
	return resp
}
