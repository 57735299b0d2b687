package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repositories for the application
type Repositories struct {
	UserRepository              *UserRepository
	ProfileRepository           *ProfileRepository
	SkillRepository             *SkillRepository
	MentorshipRepository        *MentorshipRepository
	EventRepository             *EventRepository
	EventRegistrationRepository *EventRegistrationRepository
	JobRepository               *JobRepository
	NotificationRepository      *NotificationRepository
	TokenRepository             *TokenRepository
}

// NewRepositories creates all repositories sharing the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(db),
		ProfileRepository:           NewProfileRepository(db),
		SkillRepository:             NewSkillRepository(db),
		MentorshipRepository:        NewMentorshipRepository(db),
		EventRepository:             NewEventRepository(db),
		EventRegistrationRepository: NewEventRegistrationRepository(db),
		JobRepository:               NewJobRepository(db),
		NotificationRepository:      NewNotificationRepository(db),
		TokenRepository:             NewTokenRepository(db),
	}
}
