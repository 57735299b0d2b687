package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/repositories"
	"github.com/selim/alumnihub/internal/db"
)

// In-memory fakes for the store interfaces. The fake transactor serializes
// transaction bodies with a mutex, which stands in for the row locks the
// production repositories take, so concurrent callers observe the same
// one-at-a-time semantics.

type fakeTransactor struct {
	mu sync.Mutex
}

func (t *fakeTransactor) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx, nil)
}

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (s *fakeUserStore) add(user *models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		s.nextID++
		user.ID = s.nextID
	} else if user.ID > s.nextID {
		s.nextID = user.ID
	}
	s.users[user.ID] = user
	return user
}

func (s *fakeUserStore) Create(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	s.add(user)
	return user.ID, nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id], nil
}

func (s *fakeUserStore) UpdateStatus(ctx context.Context, userID int64, status models.UserStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = status
	return nil
}

func (s *fakeUserStore) List(ctx context.Context, page, pageSize int) ([]*models.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []*models.User
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, int64(len(s.users)), nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[int64]*models.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[int64]*models.Profile)}
}

func (s *fakeProfileStore) Create(ctx context.Context, tx pgx.Tx, profile *models.Profile) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	profile.ID = s.nextID
	s.profiles[profile.UserID] = profile
	return profile.ID, nil
}

func (s *fakeProfileStore) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles[userID], nil
}

func (s *fakeProfileStore) Update(ctx context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile.UpdatedAt = time.Now()
	s.profiles[profile.UserID] = profile
	return nil
}

type fakeSkillStore struct {
	mu     sync.Mutex
	nextID int64
	skills map[int64]*models.Skill
}

func newFakeSkillStore() *fakeSkillStore {
	return &fakeSkillStore{skills: make(map[int64]*models.Skill)}
}

func (s *fakeSkillStore) ListByUserID(ctx context.Context, userID int64) ([]*models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var skills []*models.Skill
	for _, skill := range s.skills {
		if skill.UserID == userID {
			skills = append(skills, skill)
		}
	}
	return skills, nil
}

func (s *fakeSkillStore) Create(ctx context.Context, skill *models.Skill) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	skill.ID = s.nextID
	s.skills[skill.ID] = skill
	return skill.ID, nil
}

func (s *fakeSkillStore) Delete(ctx context.Context, skillID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	skill, ok := s.skills[skillID]
	if !ok || skill.UserID != userID {
		return false, nil
	}
	delete(s.skills, skillID)
	return true, nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken)}
}

func (s *fakeTokenStore) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.tokens[token] = &models.RefreshToken{
		ID:        s.nextID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (s *fakeTokenStore) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[token], nil
}

func (s *fakeTokenStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *fakeTokenStore) DeleteByUserID(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, stored := range s.tokens {
		if stored.UserID == userID {
			delete(s.tokens, token)
		}
	}
	return nil
}

type fakeMatchStore struct {
	mu         sync.Mutex
	nextID     int64
	matches    map[int64]*models.MentorshipMatch
	candidates []*repositories.Candidate
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{matches: make(map[int64]*models.MentorshipMatch)}
}

func (s *fakeMatchStore) add(match *models.MentorshipMatch) *models.MentorshipMatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	if match.ID == 0 {
		s.nextID++
		match.ID = s.nextID
	} else if match.ID > s.nextID {
		s.nextID = match.ID
	}
	s.matches[match.ID] = match
	return match
}

func (s *fakeMatchStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}

func (s *fakeMatchStore) FindByPair(ctx context.Context, tx pgx.Tx, studentID, alumniID int64) (*models.MentorshipMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, match := range s.matches {
		if match.StudentID == studentID && match.AlumniID == alumniID {
			return match, nil
		}
	}
	return nil, nil
}

func (s *fakeMatchStore) GetByID(ctx context.Context, id int64) (*models.MentorshipMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches[id], nil
}

func (s *fakeMatchStore) Create(ctx context.Context, tx pgx.Tx, studentID, alumniID int64) (int64, error) {
	match := s.add(&models.MentorshipMatch{
		StudentID:   studentID,
		AlumniID:    alumniID,
		Status:      models.MatchPending,
		RequestedAt: time.Now(),
	})
	return match.ID, nil
}

func (s *fakeMatchStore) Revive(ctx context.Context, tx pgx.Tx, matchID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[matchID]
	if !ok || match.Status != models.MatchRejected {
		return pgx.ErrNoRows
	}
	match.Status = models.MatchPending
	match.RequestedAt = time.Now()
	return nil
}

func (s *fakeMatchStore) Respond(ctx context.Context, matchID, alumniID int64, status models.MatchStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[matchID]
	if !ok || match.AlumniID != alumniID || match.Status != models.MatchPending {
		return false, nil
	}
	match.Status = status
	return true, nil
}

func (s *fakeMatchStore) Complete(ctx context.Context, matchID, actorID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[matchID]
	if !ok || match.Status != models.MatchActive || !match.IsParticipant(actorID) {
		return false, nil
	}
	match.Status = models.MatchCompleted
	return true, nil
}

func (s *fakeMatchStore) ListByUser(ctx context.Context, userID int64) ([]*models.MentorshipMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []*models.MentorshipMatch
	for _, match := range s.matches {
		if match.IsParticipant(userID) {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (s *fakeMatchStore) ListCandidates(ctx context.Context, viewerID int64, targetRole models.RoleType, viewerMajor string, majorFilter, locationFilter, nameFilter *string) ([]*repositories.Candidate, error) {
	// Same ordering and cap contract as the production store
	candidates := make([]*repositories.Candidate, len(s.candidates))
	copy(candidates, s.candidates)
	sort.SliceStable(candidates, func(i, j int) bool {
		if viewerMajor != "" {
			iSame := strings.EqualFold(candidates[i].Profile.Major, viewerMajor)
			jSame := strings.EqualFold(candidates[j].Profile.Major, viewerMajor)
			if iSame != jSame {
				return iSame
			}
		}
		return candidates[i].Profile.FirstName < candidates[j].Profile.FirstName
	})
	if len(candidates) > 50 {
		candidates = candidates[:50]
	}
	return candidates, nil
}

type fakeNotificationStore struct {
	mu            sync.Mutex
	nextID        int64
	notifications map[int64]*models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[int64]*models.Notification)}
}

func (s *fakeNotificationStore) forUser(userID int64) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (s *fakeNotificationStore) Create(ctx context.Context, tx pgx.Tx, userID int64, message, notificationType string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.notifications[s.nextID] = &models.Notification{
		ID:        s.nextID,
		UserID:    userID,
		Message:   message,
		Type:      notificationType,
		CreatedAt: time.Now(),
	}
	return s.nextID, nil
}

func (s *fakeNotificationStore) ListByUser(ctx context.Context, userID int64) ([]*models.Notification, error) {
	return s.forUser(userID), nil
}

func (s *fakeNotificationStore) MarkRead(ctx context.Context, notificationID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[notificationID]
	if !ok || n.UserID != userID {
		return false, nil
	}
	n.IsRead = true
	return true, nil
}

type fakeEventStore struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*models.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*models.Event)}
}

func (s *fakeEventStore) add(event *models.Event) *models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID == 0 {
		s.nextID++
		event.ID = s.nextID
	} else if event.ID > s.nextID {
		s.nextID = event.ID
	}
	s.events[event.ID] = event
	return event
}

func (s *fakeEventStore) Create(ctx context.Context, event *models.Event) (int64, error) {
	s.add(event)
	return event.ID, nil
}

func (s *fakeEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[id], nil
}

func (s *fakeEventStore) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.Event, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeEventStore) List(ctx context.Context, eventType *string, upcoming bool, page, pageSize int) ([]*models.Event, map[int64]int, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []*models.Event
	now := time.Now()
	for _, event := range s.events {
		if eventType != nil && event.EventType != *eventType {
			continue
		}
		if upcoming != event.StartsAt.After(now) {
			continue
		}
		events = append(events, event)
	}
	return events, map[int64]int{}, int64(len(events)), nil
}

type fakeRegistrationStore struct {
	mu     sync.Mutex
	nextID int64
	regs   map[int64]*models.EventRegistration
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{regs: make(map[int64]*models.EventRegistration)}
}

func (s *fakeRegistrationStore) rowCount(eventID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, reg := range s.regs {
		if reg.EventID == eventID {
			count++
		}
	}
	return count
}

func (s *fakeRegistrationStore) FindByEventAndUser(ctx context.Context, tx pgx.Tx, eventID, userID int64) (*models.EventRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, reg := range s.regs {
		if reg.EventID == eventID && reg.UserID == userID {
			return reg, nil
		}
	}
	return nil, nil
}

func (s *fakeRegistrationStore) CountRegistered(ctx context.Context, tx pgx.Tx, eventID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, reg := range s.regs {
		if reg.EventID == eventID && reg.Status == models.RegistrationRegistered {
			count++
		}
	}
	return count, nil
}

func (s *fakeRegistrationStore) Create(ctx context.Context, tx pgx.Tx, eventID, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.regs[s.nextID] = &models.EventRegistration{
		ID:           s.nextID,
		EventID:      eventID,
		UserID:       userID,
		Status:       models.RegistrationRegistered,
		RegisteredAt: time.Now(),
	}
	return s.nextID, nil
}

func (s *fakeRegistrationStore) Reactivate(ctx context.Context, tx pgx.Tx, registrationID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regs[registrationID]
	if !ok || reg.Status != models.RegistrationCancelled {
		return pgx.ErrNoRows
	}
	reg.Status = models.RegistrationRegistered
	reg.RegisteredAt = time.Now()
	return nil
}

func (s *fakeRegistrationStore) Cancel(ctx context.Context, eventID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, reg := range s.regs {
		if reg.EventID == eventID && reg.UserID == userID && reg.Status == models.RegistrationRegistered {
			reg.Status = models.RegistrationCancelled
		}
	}
	return nil
}

func (s *fakeRegistrationStore) ListAttendees(ctx context.Context, eventID int64) ([]*models.EventRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var regs []*models.EventRegistration
	for _, reg := range s.regs {
		if reg.EventID == eventID && reg.Status == models.RegistrationRegistered {
			regs = append(regs, reg)
		}
	}
	return regs, nil
}

type fakeJobStore struct {
	mu     sync.Mutex
	nextID int64
	jobs   map[int64]*models.JobPosting
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[int64]*models.JobPosting)}
}

func (s *fakeJobStore) add(job *models.JobPosting) *models.JobPosting {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job.ID == 0 {
		s.nextID++
		job.ID = s.nextID
	} else if job.ID > s.nextID {
		s.nextID = job.ID
	}
	s.jobs[job.ID] = job
	return job
}

func (s *fakeJobStore) Create(ctx context.Context, job *models.JobPosting) (int64, error) {
	job.PostedAt = time.Now()
	s.add(job)
	return job.ID, nil
}

func (s *fakeJobStore) GetByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id], nil
}

func (s *fakeJobStore) ListActive(ctx context.Context, location, jobType, search *string, page, pageSize int) ([]*models.JobPosting, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []*models.JobPosting
	for _, job := range s.jobs {
		if job.Status == models.JobActive {
			jobs = append(jobs, job)
		}
	}
	return jobs, int64(len(jobs)), nil
}

func (s *fakeJobStore) ListByPoster(ctx context.Context, posterID int64, page, pageSize int) ([]*models.JobPosting, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []*models.JobPosting
	for _, job := range s.jobs {
		if job.PosterID == posterID {
			jobs = append(jobs, job)
		}
	}
	return jobs, int64(len(jobs)), nil
}

func (s *fakeJobStore) UpdateStatus(ctx context.Context, jobID, posterID int64, status models.JobStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok || job.PosterID != posterID {
		return false, nil
	}
	job.Status = status
	return true, nil
}
