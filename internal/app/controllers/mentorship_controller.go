package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/app/services"
	"github.com/selim/alumnihub/internal/middleware"
)

// MentorshipController handles mentorship matching operations
type MentorshipController struct {
	mentorshipService *services.MentorshipService
	logger            zerolog.Logger
}

// NewMentorshipController creates a new MentorshipController
func NewMentorshipController(mentorshipService *services.MentorshipService, logger zerolog.Logger) *MentorshipController {
	return &MentorshipController{
		mentorshipService: mentorshipService,
		logger:            logger,
	}
}

// optionalQuery returns a pointer to the query value, nil when absent
func optionalQuery(ctx *gin.Context, name string) *string {
	if value := ctx.Query(name); value != "" {
		return &value
	}
	return nil
}

// ListCandidates returns scored mentorship candidates for the caller
// @Summary List mentorship candidates
// @Description Students see active alumni and vice versa, each with a compatibility score
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param major query string false "Filter by major"
// @Param location query string false "Filter by location"
// @Param name query string false "Filter by first or last name"
// @Success 200 {object} dto.APIResponse{data=[]dto.CandidateResponse}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /mentorship/candidates [get]
func (c *MentorshipController) ListCandidates(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	role, _ := middleware.GetRole(ctx)

	filter := &dto.CandidateFilterRequest{
		Major:    optionalQuery(ctx, "major"),
		Location: optionalQuery(ctx, "location"),
		Name:     optionalQuery(ctx, "name"),
	}

	resp, err := c.mentorshipService.ListCandidates(ctx.Request.Context(), userID, models.RoleType(role), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SendRequest sends a mentorship request to an alumni
// @Summary Send a mentorship request
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendRequestRequest true "Target alumni"
// @Success 201 {object} dto.APIResponse{data=dto.RequestResultResponse}
// @Failure 400 {object} dto.ErrorResponse "Self-request or invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Alumni not found"
// @Failure 409 {object} dto.ErrorResponse "Request already pending or connection exists"
// @Router /mentorship/requests [post]
func (c *MentorshipController) SendRequest(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.mentorshipService.SendRequest(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// Respond accepts or rejects a pending mentorship request
// @Summary Respond to a mentorship request
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param request body dto.RespondRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.MatchResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the stored alumni of this request"
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Failure 409 {object} dto.ErrorResponse "Request is not pending"
// @Router /mentorship/requests/{id}/respond [post]
func (c *MentorshipController) Respond(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	matchID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RespondRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.mentorshipService.Respond(ctx.Request.Context(), matchID, userID, req.Decision)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Complete marks an active mentorship completed
// @Summary Complete a mentorship
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 200 {object} dto.APIResponse{data=dto.MatchResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a participant of this match"
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Failure 409 {object} dto.ErrorResponse "Connection is not active"
// @Router /mentorship/requests/{id}/complete [post]
func (c *MentorshipController) Complete(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	matchID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.mentorshipService.Complete(ctx.Request.Context(), matchID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListConnections returns the caller's matches grouped by lifecycle stage
// @Summary List own mentorship connections
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ConnectionsResponse}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /mentorship/connections [get]
func (c *MentorshipController) ListConnections(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.mentorshipService.ListConnections(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
