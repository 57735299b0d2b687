package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selim/alumnihub/internal/app/models"
)

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = "id, user_id, first_name, last_name, major, graduation_year, current_position, company, location, bio, updated_at"

// Create inserts the initial profile row for a new user inside the
// registration transaction.
func (r *ProfileRepository) Create(ctx context.Context, tx pgx.Tx, profile *models.Profile) (int64, error) {
	query := squirrel.Insert("profiles").
		Columns("user_id", "first_name", "last_name").
		Values(profile.UserID, profile.FirstName, profile.LastName).
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

// GetByUserID retrieves a profile by owner id, or nil when absent
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := squirrel.Select(profileColumns).
		From("profiles").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var profile models.Profile
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Major,
		&profile.GraduationYear,
		&profile.CurrentPosition,
		&profile.Company,
		&profile.Location,
		&profile.Bio,
		&profile.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &profile, nil
}

// Update overwrites the mutable profile fields for the owning user
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := squirrel.Update("profiles").
		Set("first_name", profile.FirstName).
		Set("last_name", profile.LastName).
		Set("major", profile.Major).
		Set("graduation_year", profile.GraduationYear).
		Set("current_position", profile.CurrentPosition).
		Set("company", profile.Company).
		Set("location", profile.Location).
		Set("bio", profile.Bio).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("user_id = ?", profile.UserID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
