package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/app/services"
	"github.com/selim/alumnihub/internal/middleware"
	"github.com/selim/alumnihub/internal/pkg/helpers"
)

// UserController handles admin user management
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers returns the paginated account listing
// @Summary List user accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUserListResponse}
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.userService.ListUsers(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateUserStatus activates or deactivates an account
// @Summary Update account status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse "Status updated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Cannot deactivate own account"
// @Router /admin/users/{id}/status [put]
func (c *UserController) UpdateUserStatus(ctx *gin.Context) {
	actorID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	err := c.userService.UpdateUserStatus(ctx.Request.Context(), actorID, userID, models.UserStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User status updated"))
}
