package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
	"github.com/selim/alumnihub/internal/pkg/helpers"
)

// EventService handles event creation, listing and registration
type EventService struct {
	eventStore        EventStore
	registrationStore RegistrationStore
	transactor        Transactor
	logger            zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventStore EventStore, registrationStore RegistrationStore, transactor Transactor, logger zerolog.Logger) *EventService {
	return &EventService{
		eventStore:        eventStore,
		registrationStore: registrationStore,
		transactor:        transactor,
		logger:            logger,
	}
}

// CreateEvent creates a new event owned by the caller
func (s *EventService) CreateEvent(ctx context.Context, creatorID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !models.IsValidEventType(req.EventType) {
		return nil, apperrors.NewBadRequestError("unknown event type")
	}
	if req.StartsAt.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("event start time must be in the future")
	}
	if req.MaxAttendees < 0 {
		return nil, apperrors.NewBadRequestError("max attendees cannot be negative")
	}

	event := &models.Event{
		CreatorID:    creatorID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		StartsAt:     req.StartsAt,
		Location:     strings.TrimSpace(req.Location),
		EventType:    req.EventType,
		MaxAttendees: req.MaxAttendees,
	}

	id, err := s.eventStore.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	event.ID = id

	s.logger.Info().Int64("eventId", id).Int64("creatorId", creatorID).Msg("Event created")

	return mapEventToResponse(event, 0), nil
}

// ListEvents returns a filtered, paginated event listing with live
// registration counts.
func (s *EventService) ListEvents(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error) {
	upcoming := filter.View != "past"

	events, counts, total, err := s.eventStore.List(ctx, filter.EventType, upcoming, filter.Page, filter.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	resp := &dto.EventListResponse{
		Events:         make([]dto.EventResponse, 0, len(events)),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}
	for _, event := range events {
		resp.Events = append(resp.Events, *mapEventToResponse(event, counts[event.ID]))
	}
	return resp, nil
}

// GetEvent returns one event with its attendee list
func (s *EventService) GetEvent(ctx context.Context, eventID int64) (*dto.EventDetailResponse, error) {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	registrations, err := s.registrationStore.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendees: %w", err)
	}

	detail := &dto.EventDetailResponse{
		EventResponse: *mapEventToResponse(event, len(registrations)),
		Attendees:     make([]dto.AttendeeResponse, 0, len(registrations)),
	}
	for _, reg := range registrations {
		attendee := dto.AttendeeResponse{
			UserID:       reg.UserID,
			RegisteredAt: reg.RegisteredAt,
		}
		if reg.User != nil && reg.User.Profile != nil {
			attendee.FirstName = reg.User.Profile.FirstName
			attendee.LastName = reg.User.Profile.LastName
		}
		detail.Attendees = append(detail.Attendees, attendee)
	}
	return detail, nil
}

// Register registers the caller for an event. The event row is locked for
// the duration of the transaction so the capacity check and the write are
// atomic: two racing registrations for the last slot cannot both commit.
func (s *EventService) Register(ctx context.Context, eventID, userID int64) error {
	err := s.transactor.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		event, err := s.eventStore.GetForUpdate(ctx, tx, eventID)
		if err != nil {
			return fmt.Errorf("error retrieving event: %w", err)
		}
		if event == nil {
			return apperrors.ErrEventNotFound
		}
		if event.StartsAt.Before(time.Now()) {
			return apperrors.ErrEventInPast
		}

		existing, err := s.registrationStore.FindByEventAndUser(ctx, tx, eventID, userID)
		if err != nil {
			return fmt.Errorf("error finding registration: %w", err)
		}
		if existing != nil && existing.Status == models.RegistrationRegistered {
			return apperrors.ErrAlreadyRegistered
		}

		if event.MaxAttendees > 0 {
			count, err := s.registrationStore.CountRegistered(ctx, tx, eventID)
			if err != nil {
				return fmt.Errorf("error counting registrations: %w", err)
			}
			if count >= event.MaxAttendees {
				return apperrors.ErrEventFull
			}
		}

		if existing != nil {
			// Cancelled earlier: flip the same row back to registered
			if err := s.registrationStore.Reactivate(ctx, tx, existing.ID); err != nil {
				return fmt.Errorf("error reactivating registration: %w", err)
			}
			return nil
		}

		if _, err := s.registrationStore.Create(ctx, tx, eventID, userID); err != nil {
			return fmt.Errorf("error creating registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("eventId", eventID).Int64("userId", userID).Msg("Event registration created")
	return nil
}

// CancelRegistration cancels the caller's registration. Cancelling a
// registration that does not exist is a no-op success.
func (s *EventService) CancelRegistration(ctx context.Context, eventID, userID int64) error {
	if err := s.registrationStore.Cancel(ctx, eventID, userID); err != nil {
		return fmt.Errorf("error cancelling registration: %w", err)
	}
	return nil
}

func mapEventToResponse(event *models.Event, registeredCount int) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:              event.ID,
		Title:           event.Title,
		Description:     event.Description,
		StartsAt:        event.StartsAt,
		Location:        event.Location,
		EventType:       event.EventType,
		MaxAttendees:    event.MaxAttendees,
		RegisteredCount: registeredCount,
		CreatedAt:       event.CreatedAt,
	}
	if event.MaxAttendees > 0 {
		spotsLeft := event.MaxAttendees - registeredCount
		if spotsLeft < 0 {
			spotsLeft = 0
		}
		resp.SpotsLeft = &spotsLeft
	}
	if event.Creator != nil {
		resp.Creator = mapUserToBasicResponse(event.Creator)
	}
	return resp
}
