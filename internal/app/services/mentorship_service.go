package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/matching"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
)

// MentorshipService handles candidate discovery and the request lifecycle
type MentorshipService struct {
	matchStore        MatchStore
	userStore         UserStore
	profileStore      ProfileStore
	skillStore        SkillStore
	notificationStore NotificationStore
	transactor        Transactor
	logger            zerolog.Logger
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(
	matchStore MatchStore,
	userStore UserStore,
	profileStore ProfileStore,
	skillStore SkillStore,
	notificationStore NotificationStore,
	transactor Transactor,
	logger zerolog.Logger,
) *MentorshipService {
	return &MentorshipService{
		matchStore:        matchStore,
		userStore:         userStore,
		profileStore:      profileStore,
		skillStore:        skillStore,
		notificationStore: notificationStore,
		transactor:        transactor,
		logger:            logger,
	}
}

// ListCandidates returns active users of the opposite role, each annotated
// with a compatibility score against the viewer and any existing connection
// status between the pair.
func (s *MentorshipService) ListCandidates(ctx context.Context, viewerID int64, viewerRole models.RoleType, filter *dto.CandidateFilterRequest) ([]dto.CandidateResponse, error) {
	var targetRole models.RoleType
	switch viewerRole {
	case models.RoleStudent:
		targetRole = models.RoleAlumni
	case models.RoleAlumni:
		targetRole = models.RoleStudent
	default:
		return nil, apperrors.ErrPermissionDenied
	}

	viewerProfile, err := s.profileStore.GetByUserID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving viewer profile: %w", err)
	}
	if viewerProfile == nil {
		return nil, apperrors.ErrUserNotFound
	}

	viewerSkills, err := s.skillStore.ListByUserID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("error listing viewer skills: %w", err)
	}

	viewer := matching.CandidateProfile{
		Major:           viewerProfile.Major,
		Location:        viewerProfile.Location,
		GraduationYear:  viewerProfile.GraduationYear,
		Bio:             viewerProfile.Bio,
		CurrentPosition: viewerProfile.CurrentPosition,
		Company:         viewerProfile.Company,
		HasSkills:       len(viewerSkills) > 0,
	}

	// Same-major candidates are surfaced first for students only
	viewerMajor := ""
	if viewerRole == models.RoleStudent {
		viewerMajor = viewerProfile.Major
	}

	candidates, err := s.matchStore.ListCandidates(ctx, viewerID, targetRole, viewerMajor, filter.Major, filter.Location, filter.Name)
	if err != nil {
		return nil, fmt.Errorf("error listing candidates: %w", err)
	}

	statusByUser, err := s.connectionStatuses(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		candidate := matching.CandidateProfile{
			Major:           c.Profile.Major,
			Location:        c.Profile.Location,
			GraduationYear:  c.Profile.GraduationYear,
			Bio:             c.Profile.Bio,
			CurrentPosition: c.Profile.CurrentPosition,
			Company:         c.Profile.Company,
			HasSkills:       len(c.Skills) > 0,
		}

		responses = append(responses, dto.CandidateResponse{
			UserID:           c.Profile.UserID,
			FirstName:        c.Profile.FirstName,
			LastName:         c.Profile.LastName,
			Major:            c.Profile.Major,
			Location:         c.Profile.Location,
			CurrentPosition:  c.Profile.CurrentPosition,
			Company:          c.Profile.Company,
			GraduationYear:   c.Profile.GraduationYear,
			Skills:           c.Skills,
			MatchScore:       matching.Score(viewer, candidate),
			ConnectionStatus: statusByUser[c.Profile.UserID],
		})
	}

	return responses, nil
}

// SendRequest creates or revives a pending mentorship request from a student
// to an alumni. The pair row is locked for the duration of the transaction so
// concurrent duplicate requests serialize, and the alumni's notification
// commits together with the match write.
func (s *MentorshipService) SendRequest(ctx context.Context, studentID int64, req *dto.SendRequestRequest) (*dto.RequestResultResponse, error) {
	if studentID == req.AlumniID {
		return nil, apperrors.ErrSelfRequest
	}

	alumni, err := s.userStore.FindByID(ctx, req.AlumniID)
	if err != nil {
		return nil, fmt.Errorf("error finding alumni: %w", err)
	}
	if alumni == nil || alumni.Role != models.RoleAlumni {
		return nil, apperrors.ErrUserNotFound
	}
	if alumni.Status != models.UserActive {
		return nil, apperrors.NewConflictError("this alumni account is not active")
	}

	var revived bool
	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		existing, err := s.matchStore.FindByPair(ctx, tx, studentID, req.AlumniID)
		if err != nil {
			return fmt.Errorf("error finding existing match: %w", err)
		}

		if existing != nil {
			switch existing.Status {
			case models.MatchPending:
				return apperrors.ErrRequestPending
			case models.MatchActive:
				return apperrors.ErrAlreadyConnected
			case models.MatchCompleted:
				return apperrors.NewConflictError("mentorship with this alumni has already been completed")
			case models.MatchRejected:
				if err := s.matchStore.Revive(ctx, tx, existing.ID); err != nil {
					return fmt.Errorf("error reviving match: %w", err)
				}
				revived = true
			default:
				return fmt.Errorf("unexpected match status %q", existing.Status)
			}
		} else {
			if _, err := s.matchStore.Create(ctx, tx, studentID, req.AlumniID); err != nil {
				return fmt.Errorf("error creating match: %w", err)
			}
		}

		message := "You have received a new mentorship request"
		if _, err := s.notificationStore.Create(ctx, tx, req.AlumniID, message, models.NotificationMentorshipRequest); err != nil {
			return fmt.Errorf("error creating notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentId", studentID).
		Int64("alumniId", req.AlumniID).
		Bool("revived", revived).
		Msg("Mentorship request sent")

	return &dto.RequestResultResponse{Success: true, Message: "Mentorship request sent"}, nil
}

// Respond accepts or rejects a pending request. The update is guarded by the
// stored alumni id and the pending status; when it matches nothing the reason
// is resolved for a precise error, with no state change either way.
func (s *MentorshipService) Respond(ctx context.Context, matchID, alumniID int64, decision string) (*dto.MatchResponse, error) {
	var newStatus models.MatchStatus
	switch decision {
	case "accept":
		newStatus = models.MatchActive
	case "reject":
		newStatus = models.MatchRejected
	default:
		return nil, apperrors.NewBadRequestError("decision must be accept or reject")
	}

	updated, err := s.matchStore.Respond(ctx, matchID, alumniID, newStatus)
	if err != nil {
		return nil, fmt.Errorf("error updating match: %w", err)
	}
	if !updated {
		return nil, s.resolveRespondFailure(ctx, matchID, alumniID)
	}

	s.logger.Info().Int64("matchId", matchID).Str("status", string(newStatus)).Msg("Mentorship request answered")

	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving match: %w", err)
	}
	return mapMatchToResponse(match), nil
}

// Complete marks an active connection completed. Either stored participant
// may do so, and only from the active state.
func (s *MentorshipService) Complete(ctx context.Context, matchID, actorID int64) (*dto.MatchResponse, error) {
	updated, err := s.matchStore.Complete(ctx, matchID, actorID)
	if err != nil {
		return nil, fmt.Errorf("error updating match: %w", err)
	}
	if !updated {
		return nil, s.resolveCompleteFailure(ctx, matchID, actorID)
	}

	s.logger.Info().Int64("matchId", matchID).Int64("userId", actorID).Msg("Mentorship completed")

	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving match: %w", err)
	}
	return mapMatchToResponse(match), nil
}

// ListConnections groups the caller's matches by lifecycle stage
func (s *MentorshipService) ListConnections(ctx context.Context, userID int64) (*dto.ConnectionsResponse, error) {
	matches, err := s.matchStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}

	resp := &dto.ConnectionsResponse{
		Pending: []dto.MatchResponse{},
		Active:  []dto.MatchResponse{},
		Past:    []dto.MatchResponse{},
	}
	for _, match := range matches {
		mapped := *mapMatchToResponse(match)
		switch match.Status {
		case models.MatchPending:
			resp.Pending = append(resp.Pending, mapped)
		case models.MatchActive:
			resp.Active = append(resp.Active, mapped)
		case models.MatchRejected, models.MatchCompleted:
			resp.Past = append(resp.Past, mapped)
		}
	}
	return resp, nil
}

func (s *MentorshipService) resolveRespondFailure(ctx context.Context, matchID, alumniID int64) error {
	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("error retrieving match: %w", err)
	}
	switch {
	case match == nil:
		return apperrors.ErrMatchNotFound
	case match.AlumniID != alumniID:
		return apperrors.ErrNotMatchParticipant
	default:
		return apperrors.ErrMatchNotPending
	}
}

func (s *MentorshipService) resolveCompleteFailure(ctx context.Context, matchID, actorID int64) error {
	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("error retrieving match: %w", err)
	}
	switch {
	case match == nil:
		return apperrors.ErrMatchNotFound
	case !match.IsParticipant(actorID):
		return apperrors.ErrNotMatchParticipant
	default:
		return apperrors.ErrMatchNotActive
	}
}

// connectionStatuses maps the other participant of each of the viewer's
// non-terminal matches to its status, for candidate listing annotations.
func (s *MentorshipService) connectionStatuses(ctx context.Context, viewerID int64) (map[int64]string, error) {
	matches, err := s.matchStore.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}

	statuses := make(map[int64]string, len(matches))
	for _, match := range matches {
		if match.Status != models.MatchPending && match.Status != models.MatchActive {
			continue
		}
		other := match.StudentID
		if other == viewerID {
			other = match.AlumniID
		}
		statuses[other] = string(match.Status)
	}
	return statuses, nil
}

func mapMatchToResponse(match *models.MentorshipMatch) *dto.MatchResponse {
	resp := &dto.MatchResponse{
		ID:          match.ID,
		StudentID:   match.StudentID,
		AlumniID:    match.AlumniID,
		Status:      string(match.Status),
		RequestedAt: match.RequestedAt,
	}
	if match.Student != nil {
		resp.Student = mapUserToBasicResponse(match.Student)
	}
	if match.Alumni != nil {
		resp.Alumni = mapUserToBasicResponse(match.Alumni)
	}
	return resp
}

func mapUserToBasicResponse(user *models.User) *dto.UserBasicResponse {
	resp := &dto.UserBasicResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}
	if user.Profile != nil {
		resp.FirstName = user.Profile.FirstName
		resp.LastName = user.Profile.LastName
	}
	return resp
}
