package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/pkg/dberrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, password, role, status, created_at, updated_at"

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &user, nil
}

// Create inserts a new user inside the given transaction and returns its id.
// The transaction also carries the empty profile insert so registration is
// all-or-nothing.
func (r *UserRepository) Create(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	query := squirrel.Insert("users").
		Columns("email", "password", "role", "status").
		Values(user.Email, user.Password, user.Role, user.Status).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, err
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// FindByEmail retrieves a user by email, or nil when absent
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := squirrel.Select(userColumns).
		From("users").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanUser(r.db.QueryRow(ctx, sql, args...))
}

// FindByID retrieves a user by id, or nil when absent
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := squirrel.Select(userColumns).
		From("users").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanUser(r.db.QueryRow(ctx, sql, args...))
}

// UpdateStatus flips the account status. Admin action only.
func (r *UserRepository) UpdateStatus(ctx context.Context, userID int64, status models.UserStatus) error {
	query := squirrel.Update("users").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", userID).
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

// List retrieves users with their profile names for the admin listing
func (r *UserRepository) List(ctx context.Context, page, pageSize int) ([]*models.User, int64, error) {
	offset := (page - 1) * pageSize
	query := squirrel.Select(
		"u.id", "u.email", "u.password", "u.role", "u.status", "u.created_at", "u.updated_at",
		"p.first_name", "p.last_name",
		"COUNT(*) OVER()",
	).
		From("users u").
		LeftJoin("profiles p ON p.user_id = u.id").
		OrderBy("u.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	var total int64
	for rows.Next() {
		var user models.User
		var firstName, lastName *string
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Password,
			&user.Role,
			&user.Status,
			&user.CreatedAt,
			&user.UpdatedAt,
			&firstName,
			&lastName,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		if firstName != nil {
			user.Profile = &models.Profile{
				UserID:    user.ID,
				FirstName: *firstName,
			}
			if lastName != nil {
				user.Profile.LastName = *lastName
			}
		}
		users = append(users, &user)
	}

	return users, total, nil
}
