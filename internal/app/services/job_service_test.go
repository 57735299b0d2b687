package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
)

func newJobFixture() (*JobService, *fakeJobStore) {
	store := newFakeJobStore()
	return NewJobService(store, zerolog.Nop()), store
}

func TestCreateJob(t *testing.T) {
	service, store := newJobFixture()

	resp, err := service.CreateJob(context.Background(), 7, &dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Remote",
		JobType:     "full-time",
		Description: "Build services",
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if resp.Status != string(models.JobActive) {
		t.Errorf("status = %q, want active", resp.Status)
	}

	job, _ := store.GetByID(context.Background(), resp.ID)
	if job == nil || job.PosterID != 7 {
		t.Error("posting should be stored with the caller as poster")
	}
}

func TestCreateJobRejectsUnknownType(t *testing.T) {
	service, _ := newJobFixture()

	_, err := service.CreateJob(context.Background(), 7, &dto.CreateJobRequest{
		Title:       "Odd",
		Company:     "Acme",
		Location:    "Remote",
		JobType:     "gig",
		Description: "d",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("err = %v, want bad request", err)
	}
}

func TestCreateJobRejectsPastDeadline(t *testing.T) {
	service, _ := newJobFixture()
	deadline := time.Now().Add(-24 * time.Hour)

	_, err := service.CreateJob(context.Background(), 7, &dto.CreateJobRequest{
		Title:               "Expired",
		Company:             "Acme",
		Location:            "Remote",
		JobType:             "contract",
		Description:         "d",
		ApplicationDeadline: &deadline,
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("err = %v, want bad request", err)
	}
}

func TestCloseJobByOwner(t *testing.T) {
	service, store := newJobFixture()
	job := store.add(&models.JobPosting{PosterID: 7, Status: models.JobActive})

	if err := service.CloseJob(context.Background(), job.ID, 7); err != nil {
		t.Fatalf("CloseJob: %v", err)
	}
	if job.Status != models.JobClosed {
		t.Errorf("status = %q, want closed", job.Status)
	}

	if err := service.ReopenJob(context.Background(), job.ID, 7); err != nil {
		t.Fatalf("ReopenJob: %v", err)
	}
	if job.Status != models.JobActive {
		t.Errorf("status = %q, want active", job.Status)
	}
}

func TestCloseJobByNonOwner(t *testing.T) {
	service, store := newJobFixture()
	job := store.add(&models.JobPosting{PosterID: 7, Status: models.JobActive})

	err := service.CloseJob(context.Background(), job.ID, 8)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
	if job.Status != models.JobActive {
		t.Errorf("status = %q, must stay active", job.Status)
	}
}

func TestCloseUnknownJob(t *testing.T) {
	service, _ := newJobFixture()

	err := service.CloseJob(context.Background(), 42, 7)
	if !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestGetJobHidesClosedFromNonOwner(t *testing.T) {
	service, store := newJobFixture()
	job := store.add(&models.JobPosting{PosterID: 7, Status: models.JobClosed})

	if _, err := service.GetJob(context.Background(), job.ID, 8); !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound for non-owner", err)
	}
	if _, err := service.GetJob(context.Background(), job.ID, 7); err != nil {
		t.Errorf("GetJob by owner: %v", err)
	}
}

func TestListJobsReturnsActiveOnly(t *testing.T) {
	service, store := newJobFixture()
	store.add(&models.JobPosting{PosterID: 7, Status: models.JobActive})
	store.add(&models.JobPosting{PosterID: 7, Status: models.JobClosed})

	resp, err := service.ListJobs(context.Background(), &dto.JobFilterRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(resp.Jobs) != 1 {
		t.Errorf("jobs = %d, want 1", len(resp.Jobs))
	}
}

func TestListOwnJobsIncludesClosed(t *testing.T) {
	service, store := newJobFixture()
	store.add(&models.JobPosting{PosterID: 7, Status: models.JobActive})
	store.add(&models.JobPosting{PosterID: 7, Status: models.JobClosed})
	store.add(&models.JobPosting{PosterID: 8, Status: models.JobActive})

	resp, err := service.ListOwnJobs(context.Background(), 7, 1, 10)
	if err != nil {
		t.Fatalf("ListOwnJobs: %v", err)
	}
	if len(resp.Jobs) != 2 {
		t.Errorf("jobs = %d, want 2", len(resp.Jobs))
	}
}
