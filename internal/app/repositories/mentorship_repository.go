package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selim/alumnihub/internal/app/models"
)

// MentorshipRepository handles database operations for mentorship matches
type MentorshipRepository struct {
	db *pgxpool.Pool
}

// NewMentorshipRepository creates a new MentorshipRepository
func NewMentorshipRepository(db *pgxpool.Pool) *MentorshipRepository {
	return &MentorshipRepository{db: db}
}

const matchColumns = "id, student_id, alumni_id, status, requested_at"

func scanMatch(row pgx.Row) (*models.MentorshipMatch, error) {
	var match models.MentorshipMatch
	err := row.Scan(
		&match.ID,
		&match.StudentID,
		&match.AlumniID,
		&match.Status,
		&match.RequestedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &match, nil
}

// FindByPair retrieves the single match row for a (student, alumni) pair,
// locking it inside the given transaction so concurrent requests serialize.
func (r *MentorshipRepository) FindByPair(ctx context.Context, tx pgx.Tx, studentID, alumniID int64) (*models.MentorshipMatch, error) {
	query := squirrel.Select(matchColumns).
		From("mentorship_matches").
		Where("student_id = ? AND alumni_id = ?", studentID, alumniID).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanMatch(tx.QueryRow(ctx, sql, args...))
}

// GetByID retrieves a match by id, or nil when absent
func (r *MentorshipRepository) GetByID(ctx context.Context, id int64) (*models.MentorshipMatch, error) {
	query := squirrel.Select(matchColumns).
		From("mentorship_matches").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanMatch(r.db.QueryRow(ctx, sql, args...))
}

// Create inserts a new pending match inside the request transaction
func (r *MentorshipRepository) Create(ctx context.Context, tx pgx.Tx, studentID, alumniID int64) (int64, error) {
	query := squirrel.Insert("mentorship_matches").
		Columns("student_id", "alumni_id", "status", "requested_at").
		Values(studentID, alumniID, models.MatchPending, squirrel.Expr("NOW()")).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// Revive moves a rejected match back to pending with a fresh timestamp.
// Guarded on the rejected status so a concurrent transition cannot be
// overwritten.
func (r *MentorshipRepository) Revive(ctx context.Context, tx pgx.Tx, matchID int64) error {
	query := squirrel.Update("mentorship_matches").
		Set("status", models.MatchPending).
		Set("requested_at", squirrel.Expr("NOW()")).
		Where("id = ? AND status = ?", matchID, models.MatchRejected).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Respond transitions a pending match to active or rejected. The WHERE
// clause re-checks the stored alumni id and the pending status so the
// authorization decision happens against database state, not request claims.
func (r *MentorshipRepository) Respond(ctx context.Context, matchID, alumniID int64, status models.MatchStatus) (bool, error) {
	query := squirrel.Update("mentorship_matches").
		Set("status", status).
		Where("id = ? AND alumni_id = ? AND status = ?", matchID, alumniID, models.MatchPending).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Complete transitions an active match to completed when the actor is one of
// the stored participants.
func (r *MentorshipRepository) Complete(ctx context.Context, matchID, actorID int64) (bool, error) {
	query := squirrel.Update("mentorship_matches").
		Set("status", models.MatchCompleted).
		Where("id = ? AND status = ? AND (student_id = ? OR alumni_id = ?)",
			matchID, models.MatchActive, actorID, actorID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ListByUser retrieves every match the user participates in, newest first
func (r *MentorshipRepository) ListByUser(ctx context.Context, userID int64) ([]*models.MentorshipMatch, error) {
	query := squirrel.Select(matchColumns).
		From("mentorship_matches").
		Where("student_id = ? OR alumni_id = ?", userID, userID).
		OrderBy("requested_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var matches []*models.MentorshipMatch
	for rows.Next() {
		var match models.MentorshipMatch
		err := rows.Scan(
			&match.ID,
			&match.StudentID,
			&match.AlumniID,
			&match.Status,
			&match.RequestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		matches = append(matches, &match)
	}

	return matches, nil
}

// Candidate is one row of the mentorship candidate listing
type Candidate struct {
	Profile models.Profile
	Skills  []string
}

// candidateLimit caps the candidate listing
const candidateLimit = 50

// ListCandidates retrieves active users of the target role, excluding the
// viewer, with their skills aggregated. When viewerMajor is non-empty,
// same-major candidates sort first; the tie-break is always first name.
func (r *MentorshipRepository) ListCandidates(ctx context.Context, viewerID int64, targetRole models.RoleType, viewerMajor string, majorFilter, locationFilter, nameFilter *string) ([]*Candidate, error) {
	query := squirrel.Select(
		"p.id", "p.user_id", "p.first_name", "p.last_name", "p.major", "p.graduation_year",
		"p.current_position", "p.company", "p.location", "p.bio", "p.updated_at",
		"(SELECT string_agg(s.name, ',' ORDER BY s.name) FROM skills s WHERE s.user_id = u.id)",
	).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where("u.role = ?", targetRole).
		Where("u.status = ?", models.UserActive).
		Where("u.id <> ?", viewerID).
		PlaceholderFormat(squirrel.Dollar)

	if majorFilter != nil && *majorFilter != "" {
		query = query.Where("p.major ILIKE ?", "%"+*majorFilter+"%")
	}
	if locationFilter != nil && *locationFilter != "" {
		query = query.Where("p.location ILIKE ?", "%"+*locationFilter+"%")
	}
	if nameFilter != nil && *nameFilter != "" {
		pattern := "%" + *nameFilter + "%"
		query = query.Where("(p.first_name ILIKE ? OR p.last_name ILIKE ?)", pattern, pattern)
	}

	if viewerMajor != "" {
		query = query.OrderByClause("CASE WHEN LOWER(p.major) = LOWER(?) THEN 0 ELSE 1 END", viewerMajor)
	}
	query = query.OrderBy("p.first_name ASC").Limit(candidateLimit)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var candidates []*Candidate
	for rows.Next() {
		var candidate Candidate
		var skillsAgg *string
		err := rows.Scan(
			&candidate.Profile.ID,
			&candidate.Profile.UserID,
			&candidate.Profile.FirstName,
			&candidate.Profile.LastName,
			&candidate.Profile.Major,
			&candidate.Profile.GraduationYear,
			&candidate.Profile.CurrentPosition,
			&candidate.Profile.Company,
			&candidate.Profile.Location,
			&candidate.Profile.Bio,
			&candidate.Profile.UpdatedAt,
			&skillsAgg,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if skillsAgg != nil && *skillsAgg != "" {
			candidate.Skills = strings.Split(*skillsAgg, ",")
		}
		candidates = append(candidates, &candidate)
	}

	return candidates, nil
}
