package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
	"github.com/selim/alumnihub/internal/pkg/helpers"
)

// UserService handles admin user management
type UserService struct {
	userStore UserStore
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore UserStore, logger zerolog.Logger) *UserService {
	return &UserService{userStore: userStore, logger: logger}
}

// ListUsers returns the paginated account listing for administrators
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) (*dto.AdminUserListResponse, error) {
	users, total, err := s.userStore.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	resp := &dto.AdminUserListResponse{
		Users:          make([]dto.AdminUserResponse, 0, len(users)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, user := range users {
		entry := dto.AdminUserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Role:      string(user.Role),
			Status:    string(user.Status),
			CreatedAt: user.CreatedAt,
		}
		if user.Profile != nil {
			entry.FirstName = user.Profile.FirstName
			entry.LastName = user.Profile.LastName
		}
		resp.Users = append(resp.Users, entry)
	}
	return resp, nil
}

// UpdateUserStatus activates or deactivates an account. Administrators
// cannot deactivate their own account.
func (s *UserService) UpdateUserStatus(ctx context.Context, actorID, userID int64, status models.UserStatus) error {
	if !status.IsValid() {
		return apperrors.NewBadRequestError("status must be active or inactive")
	}
	if userID == actorID && status == models.UserInactive {
		return apperrors.NewConflictError("cannot deactivate your own account")
	}

	err := s.userStore.UpdateStatus(ctx, userID, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error updating user status: %w", err)
	}

	s.logger.Info().Int64("userId", userID).Str("status", string(status)).Msg("User status changed")
	return nil
}
