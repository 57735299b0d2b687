package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/app/services"
	"github.com/selim/alumnihub/internal/middleware"
	"github.com/selim/alumnihub/internal/pkg/helpers"
)

// JobController handles job posting operations
type JobController struct {
	jobService *services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService *services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{
		jobService: jobService,
		logger:     logger,
	}
}

// CreateJob creates a job posting
// @Summary Create a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job posting details"
// @Success 201 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown job type or past deadline"
// @Failure 403 {object} dto.ErrorResponse "Insufficient role"
// @Router /jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.jobService.CreateJob(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ListJobs returns the active job listing
// @Summary List active job postings
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param location query string false "Filter by location"
// @Param type query string false "Filter by job type"
// @Param search query string false "Search in title and company"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.JobListResponse}
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	filter := &dto.JobFilterRequest{
		Location: optionalQuery(ctx, "location"),
		JobType:  optionalQuery(ctx, "type"),
		Search:   optionalQuery(ctx, "search"),
		Page:     page,
		PageSize: pageSize,
	}

	resp, err := c.jobService.ListJobs(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListMyJobs returns all of the caller's own postings
// @Summary List own job postings
// @Description Owners see all their postings regardless of status
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.JobListResponse}
// @Router /jobs/mine [get]
func (c *JobController) ListMyJobs(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.jobService.ListOwnJobs(ctx.Request.Context(), userID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetJob returns one job posting
// @Summary Get a job posting
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.jobService.GetJob(ctx.Request.Context(), jobID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CloseJob closes one of the caller's own postings
// @Summary Close a job posting
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse "Closed"
// @Failure 403 {object} dto.ErrorResponse "Not the poster"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id}/close [post]
func (c *JobController) CloseJob(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.jobService.CloseJob(ctx.Request.Context(), jobID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Job posting closed"))
}

// ReopenJob reopens one of the caller's own postings
// @Summary Reopen a job posting
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse "Reopened"
// @Failure 403 {object} dto.ErrorResponse "Not the poster"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id}/reopen [post]
func (c *JobController) ReopenJob(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.jobService.ReopenJob(ctx.Request.Context(), jobID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Job posting reopened"))
}
