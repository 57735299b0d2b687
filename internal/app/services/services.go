package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/repositories"
	"github.com/selim/alumnihub/internal/db"
	"github.com/selim/alumnihub/internal/pkg/auth"
)

// Store interfaces are declared here, on the consumer side, so services can
// be exercised against in-memory fakes in tests. The repositories package
// provides the production implementations.

// Transactor runs a function inside a database transaction
type Transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// UserStore handles user rows
type UserStore interface {
	Create(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	UpdateStatus(ctx context.Context, userID int64, status models.UserStatus) error
	List(ctx context.Context, page, pageSize int) ([]*models.User, int64, error)
}

// ProfileStore handles profile rows
type ProfileStore interface {
	Create(ctx context.Context, tx pgx.Tx, profile *models.Profile) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

// SkillStore handles skill rows
type SkillStore interface {
	ListByUserID(ctx context.Context, userID int64) ([]*models.Skill, error)
	Create(ctx context.Context, skill *models.Skill) (int64, error)
	Delete(ctx context.Context, skillID, userID int64) (bool, error)
}

// TokenStore handles refresh token rows
type TokenStore interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// MatchStore handles mentorship match rows
type MatchStore interface {
	FindByPair(ctx context.Context, tx pgx.Tx, studentID, alumniID int64) (*models.MentorshipMatch, error)
	GetByID(ctx context.Context, id int64) (*models.MentorshipMatch, error)
	Create(ctx context.Context, tx pgx.Tx, studentID, alumniID int64) (int64, error)
	Revive(ctx context.Context, tx pgx.Tx, matchID int64) error
	Respond(ctx context.Context, matchID, alumniID int64, status models.MatchStatus) (bool, error)
	Complete(ctx context.Context, matchID, actorID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.MentorshipMatch, error)
	// ListCandidates returns at most 50 rows. When viewerMajor is non-empty,
	// candidates sharing that major (case-insensitive) sort first; the
	// tie-break is always first name ascending. The service preserves this
	// order in its responses.
	ListCandidates(ctx context.Context, viewerID int64, targetRole models.RoleType, viewerMajor string, majorFilter, locationFilter, nameFilter *string) ([]*repositories.Candidate, error)
}

// EventStore handles event rows
type EventStore interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.Event, error)
	List(ctx context.Context, eventType *string, upcoming bool, page, pageSize int) ([]*models.Event, map[int64]int, int64, error)
}

// RegistrationStore handles event registration rows
type RegistrationStore interface {
	FindByEventAndUser(ctx context.Context, tx pgx.Tx, eventID, userID int64) (*models.EventRegistration, error)
	CountRegistered(ctx context.Context, tx pgx.Tx, eventID int64) (int, error)
	Create(ctx context.Context, tx pgx.Tx, eventID, userID int64) (int64, error)
	Reactivate(ctx context.Context, tx pgx.Tx, registrationID int64) error
	Cancel(ctx context.Context, eventID, userID int64) error
	ListAttendees(ctx context.Context, eventID int64) ([]*models.EventRegistration, error)
}

// JobStore handles job posting rows
type JobStore interface {
	Create(ctx context.Context, job *models.JobPosting) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.JobPosting, error)
	ListActive(ctx context.Context, location, jobType, search *string, page, pageSize int) ([]*models.JobPosting, int64, error)
	ListByPoster(ctx context.Context, posterID int64, page, pageSize int) ([]*models.JobPosting, int64, error)
	UpdateStatus(ctx context.Context, jobID, posterID int64, status models.JobStatus) (bool, error)
}

// NotificationStore handles notification rows
type NotificationStore interface {
	Create(ctx context.Context, tx pgx.Tx, userID int64, message, notificationType string) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) (bool, error)
}

// Services holds all services for the application
type Services struct {
	AuthService         *AuthService
	ProfileService      *ProfileService
	MentorshipService   *MentorshipService
	EventService        *EventService
	JobService          *JobService
	NotificationService *NotificationService
	UserService         *UserService
}

// NewServices creates all services wired to the production repositories
func NewServices(repos *repositories.Repositories, database *db.PostgresDB, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.ProfileRepository,
			repos.TokenRepository,
			database,
			jwtService,
			logger,
		),
		ProfileService: NewProfileService(
			repos.ProfileRepository,
			repos.SkillRepository,
			repos.UserRepository,
			logger,
		),
		MentorshipService: NewMentorshipService(
			repos.MentorshipRepository,
			repos.UserRepository,
			repos.ProfileRepository,
			repos.SkillRepository,
			repos.NotificationRepository,
			database,
			logger,
		),
		EventService: NewEventService(
			repos.EventRepository,
			repos.EventRegistrationRepository,
			database,
			logger,
		),
		JobService: NewJobService(
			repos.JobRepository,
			logger,
		),
		NotificationService: NewNotificationService(
			repos.NotificationRepository,
			logger,
		),
		UserService: NewUserService(
			repos.UserRepository,
			logger,
		),
	}
}
