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

// EventController handles event operations
type EventController struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// CreateEvent creates a new event
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown event type or past start time"
// @Failure 403 {object} dto.ErrorResponse "Insufficient role"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.eventService.CreateEvent(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ListEvents returns the filtered event listing
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by event type"
// @Param view query string false "upcoming (default) or past"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse}
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	filter := &dto.EventFilterRequest{
		EventType: optionalQuery(ctx, "type"),
		View:      ctx.Query("view"),
		Page:      page,
		PageSize:  pageSize,
	}

	resp, err := c.eventService.ListEvents(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetEvent returns one event with its attendee list
// @Summary Get event detail
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Register registers the caller for an event
// @Summary Register for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} dto.APIResponse "Registered"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Event full, in the past, or already registered"
// @Router /events/{id}/register [post]
func (c *EventController) Register(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Register(ctx.Request.Context(), eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Registered for event"))
}

// Cancel cancels the caller's event registration
// @Summary Cancel an event registration
// @Description Cancelling a registration that does not exist is a no-op success
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse "Cancelled"
// @Router /events/{id}/cancel [post]
func (c *EventController) Cancel(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.CancelRegistration(ctx.Request.Context(), eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Registration cancelled"))
}
