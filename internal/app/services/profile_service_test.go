package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
)

type profileFixture struct {
	profiles *fakeProfileStore
	skills   *fakeSkillStore
	users    *fakeUserStore
	service  *ProfileService
}

func newProfileFixture() *profileFixture {
	f := &profileFixture{
		profiles: newFakeProfileStore(),
		skills:   newFakeSkillStore(),
		users:    newFakeUserStore(),
	}
	f.service = NewProfileService(f.profiles, f.skills, f.users, zerolog.Nop())
	return f
}

func (f *profileFixture) seedProfile(userID int64, firstName, lastName string) {
	f.profiles.Create(context.Background(), nil, &models.Profile{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
	})
}

func TestGetProfileIncludesSkills(t *testing.T) {
	f := newProfileFixture()
	f.seedProfile(1, "Ada", "Lovelace")
	f.skills.Create(context.Background(), &models.Skill{
		UserID:      1,
		Name:        "Go",
		Proficiency: models.ProficiencyAdvanced,
	})

	resp, err := f.service.GetProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if resp.FirstName != "Ada" {
		t.Errorf("expected first name Ada, got %q", resp.FirstName)
	}
	if len(resp.Skills) != 1 || resp.Skills[0].Name != "Go" {
		t.Errorf("expected one skill named Go, got %+v", resp.Skills)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	f := newProfileFixture()

	_, err := f.service.GetProfile(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateProfileOverwritesFields(t *testing.T) {
	f := newProfileFixture()
	f.seedProfile(1, "Ada", "Lovelace")

	year := 2015
	resp, err := f.service.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{
		FirstName:       "  Ada ",
		LastName:        "Lovelace",
		Major:           "Computer Science",
		GraduationYear:  &year,
		CurrentPosition: "Engineer",
		Company:         "Analytical Engines",
		Location:        "London",
		Bio:             "First programmer",
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if resp.FirstName != "Ada" {
		t.Errorf("expected trimmed first name, got %q", resp.FirstName)
	}
	if resp.GraduationYear == nil || *resp.GraduationYear != 2015 {
		t.Errorf("expected graduation year 2015, got %v", resp.GraduationYear)
	}

	stored, _ := f.profiles.GetByUserID(context.Background(), 1)
	if stored.Company != "Analytical Engines" {
		t.Errorf("expected stored company to be updated, got %q", stored.Company)
	}
}

func TestUpdateProfileRejectsOutOfRangeYear(t *testing.T) {
	f := newProfileFixture()
	f.seedProfile(1, "Ada", "Lovelace")

	year := 1900
	_, err := f.service.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		GraduationYear: &year,
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestAddSkillRejectsInvalidProficiency(t *testing.T) {
	f := newProfileFixture()
	f.seedProfile(1, "Ada", "Lovelace")

	_, err := f.service.AddSkill(context.Background(), 1, &dto.AddSkillRequest{
		Name:        "Go",
		Proficiency: models.ProficiencyLevel("expert"),
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestAddSkillRejectsEmptyName(t *testing.T) {
	f := newProfileFixture()
	f.seedProfile(1, "Ada", "Lovelace")

	_, err := f.service.AddSkill(context.Background(), 1, &dto.AddSkillRequest{
		Name:        "   ",
		Proficiency: models.ProficiencyBeginner,
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestRemoveSkillOwnedByCaller(t *testing.T) {
	f := newProfileFixture()
	f.seedProfile(1, "Ada", "Lovelace")
	id, _ := f.skills.Create(context.Background(), &models.Skill{
		UserID:      1,
		Name:        "Go",
		Proficiency: models.ProficiencyAdvanced,
	})

	if err := f.service.RemoveSkill(context.Background(), 1, id); err != nil {
		t.Fatalf("RemoveSkill returned error: %v", err)
	}

	skills, _ := f.skills.ListByUserID(context.Background(), 1)
	if len(skills) != 0 {
		t.Errorf("expected no skills after removal, got %d", len(skills))
	}
}

func TestRemoveSkillOfAnotherUser(t *testing.T) {
	f := newProfileFixture()
	f.seedProfile(1, "Ada", "Lovelace")
	f.seedProfile(2, "Grace", "Hopper")
	id, _ := f.skills.Create(context.Background(), &models.Skill{
		UserID:      1,
		Name:        "Go",
		Proficiency: models.ProficiencyAdvanced,
	})

	err := f.service.RemoveSkill(context.Background(), 2, id)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}

	skills, _ := f.skills.ListByUserID(context.Background(), 1)
	if len(skills) != 1 {
		t.Errorf("expected skill to survive, got %d", len(skills))
	}
}
