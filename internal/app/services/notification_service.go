package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
)

// NotificationService handles notification listing and read receipts
type NotificationService struct {
	notificationStore NotificationStore
	logger            zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationStore NotificationStore, logger zerolog.Logger) *NotificationService {
	return &NotificationService{notificationStore: notificationStore, logger: logger}
}

// ListNotifications returns the caller's notifications, newest first
func (s *NotificationService) ListNotifications(ctx context.Context, userID int64) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Type:      n.Type,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return responses, nil
}

// MarkRead marks one of the caller's own notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	updated, err := s.notificationStore.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return fmt.Errorf("error updating notification: %w", err)
	}
	if !updated {
		return apperrors.NewResourceNotFoundError("notification not found")
	}
	return nil
}
