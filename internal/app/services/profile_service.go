package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
	"github.com/selim/alumnihub/internal/pkg/dberrors"
)

// ProfileService handles profile and skill operations
type ProfileService struct {
	profileStore ProfileStore
	skillStore   SkillStore
	userStore    UserStore
	logger       zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileStore ProfileStore, skillStore SkillStore, userStore UserStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		profileStore: profileStore,
		skillStore:   skillStore,
		userStore:    userStore,
		logger:       logger,
	}
}

// GetProfile retrieves a user's profile with skills
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.ErrUserNotFound
	}

	skills, err := s.skillStore.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing skills: %w", err)
	}

	return mapProfileToResponse(profile, skills), nil
}

// UpdateProfile overwrites the caller's own profile. Identity always comes
// from the authenticated session, never from the payload.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if req.GraduationYear != nil && (*req.GraduationYear < 1950 || *req.GraduationYear > 2100) {
		return nil, apperrors.NewBadRequestError("graduation year is out of range")
	}

	profile.FirstName = strings.TrimSpace(req.FirstName)
	profile.LastName = strings.TrimSpace(req.LastName)
	profile.Major = strings.TrimSpace(req.Major)
	profile.GraduationYear = req.GraduationYear
	profile.CurrentPosition = strings.TrimSpace(req.CurrentPosition)
	profile.Company = strings.TrimSpace(req.Company)
	profile.Location = strings.TrimSpace(req.Location)
	profile.Bio = strings.TrimSpace(req.Bio)

	if err := s.profileStore.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	s.logger.Info().Int64("userId", userID).Msg("Profile updated")

	skills, err := s.skillStore.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing skills: %w", err)
	}

	return mapProfileToResponse(profile, skills), nil
}

// ListSkills returns the caller's skills
func (s *ProfileService) ListSkills(ctx context.Context, userID int64) ([]dto.SkillResponse, error) {
	skills, err := s.skillStore.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing skills: %w", err)
	}

	resp := make([]dto.SkillResponse, 0, len(skills))
	for _, skill := range skills {
		resp = append(resp, dto.SkillResponse{
			ID:          skill.ID,
			Name:        skill.Name,
			Proficiency: string(skill.Proficiency),
		})
	}
	return resp, nil
}

// AddSkill adds a skill to the caller's profile
func (s *ProfileService) AddSkill(ctx context.Context, userID int64, req *dto.AddSkillRequest) (*dto.SkillResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("skill name is required")
	}
	if !req.Proficiency.IsValid() {
		return nil, apperrors.NewBadRequestError("proficiency must be beginner, intermediate or advanced")
	}

	skill := &models.Skill{
		UserID:      userID,
		Name:        name,
		Proficiency: req.Proficiency,
	}

	id, err := s.skillStore.Create(ctx, skill)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("skill already exists on this profile")
		}
		return nil, fmt.Errorf("error creating skill: %w", err)
	}

	return &dto.SkillResponse{
		ID:          id,
		Name:        skill.Name,
		Proficiency: string(skill.Proficiency),
	}, nil
}

// RemoveSkill deletes one of the caller's own skills
func (s *ProfileService) RemoveSkill(ctx context.Context, userID, skillID int64) error {
	deleted, err := s.skillStore.Delete(ctx, skillID, userID)
	if err != nil {
		return fmt.Errorf("error deleting skill: %w", err)
	}
	if !deleted {
		return apperrors.NewResourceNotFoundError("skill not found")
	}
	return nil
}

func mapProfileToResponse(profile *models.Profile, skills []*models.Skill) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		UserID:          profile.UserID,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		Major:           profile.Major,
		GraduationYear:  profile.GraduationYear,
		CurrentPosition: profile.CurrentPosition,
		Company:         profile.Company,
		Location:        profile.Location,
		Bio:             profile.Bio,
		UpdatedAt:       profile.UpdatedAt,
	}
	for _, skill := range skills {
		resp.Skills = append(resp.Skills, dto.SkillResponse{
			ID:          skill.ID,
			Name:        skill.Name,
			Proficiency: string(skill.Proficiency),
		})
	}
	return resp
}
