package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selim/alumnihub/internal/app/models"
)

// EventRegistrationRepository handles database operations for event registrations
type EventRegistrationRepository struct {
	db *pgxpool.Pool
}

// NewEventRegistrationRepository creates a new EventRegistrationRepository
func NewEventRegistrationRepository(db *pgxpool.Pool) *EventRegistrationRepository {
	return &EventRegistrationRepository{db: db}
}

// FindByEventAndUser retrieves the single registration row for a
// (event, user) pair inside the registration transaction, or nil when absent.
func (r *EventRegistrationRepository) FindByEventAndUser(ctx context.Context, tx pgx.Tx, eventID, userID int64) (*models.EventRegistration, error) {
	query := squirrel.Select("id", "event_id", "user_id", "status", "registered_at").
		From("event_registrations").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var reg models.EventRegistration
	err = tx.QueryRow(ctx, sql, args...).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.Status,
		&reg.RegisteredAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &reg, nil
}

// CountRegistered counts live registered rows for an event. Always computed
// from the rows themselves, never a cached counter.
func (r *EventRegistrationRepository) CountRegistered(ctx context.Context, tx pgx.Tx, eventID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("event_registrations").
		Where("event_id = ? AND status = ?", eventID, models.RegistrationRegistered).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	err = tx.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

// Create inserts a new registered row inside the registration transaction
func (r *EventRegistrationRepository) Create(ctx context.Context, tx pgx.Tx, eventID, userID int64) (int64, error) {
	query := squirrel.Insert("event_registrations").
		Columns("event_id", "user_id", "status", "registered_at").
		Values(eventID, userID, models.RegistrationRegistered, squirrel.Expr("NOW()")).
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

// Reactivate flips a cancelled row back to registered with a fresh
// timestamp, keeping one row per (event, user) pair across cancel cycles.
func (r *EventRegistrationRepository) Reactivate(ctx context.Context, tx pgx.Tx, registrationID int64) error {
	query := squirrel.Update("event_registrations").
		Set("status", models.RegistrationRegistered).
		Set("registered_at", squirrel.Expr("NOW()")).
		Where("id = ?", registrationID).
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

// Cancel sets the row for a (event, user) pair to cancelled. Zero affected
// rows is not an error: cancelling a registration that never existed is a
// safe no-op.
func (r *EventRegistrationRepository) Cancel(ctx context.Context, eventID, userID int64) error {
	query := squirrel.Update("event_registrations").
		Set("status", models.RegistrationCancelled).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// ListAttendees retrieves the registered users for an event with their names
func (r *EventRegistrationRepository) ListAttendees(ctx context.Context, eventID int64) ([]*models.EventRegistration, error) {
	query := squirrel.Select(
		"er.id", "er.event_id", "er.user_id", "er.status", "er.registered_at",
		"u.email", "u.role", "p.first_name", "p.last_name",
	).
		From("event_registrations er").
		Join("users u ON u.id = er.user_id").
		LeftJoin("profiles p ON p.user_id = er.user_id").
		Where("er.event_id = ? AND er.status = ?", eventID, models.RegistrationRegistered).
		OrderBy("er.registered_at ASC").
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

	var regs []*models.EventRegistration
	for rows.Next() {
		var reg models.EventRegistration
		var user models.User
		var firstName, lastName *string
		err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.UserID,
			&reg.Status,
			&reg.RegisteredAt,
			&user.Email,
			&user.Role,
			&firstName,
			&lastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		user.ID = reg.UserID
		if firstName != nil {
			user.Profile = &models.Profile{UserID: reg.UserID, FirstName: *firstName}
			if lastName != nil {
				user.Profile.LastName = *lastName
			}
		}
		reg.User = &user
		regs = append(regs, &reg)
	}

	return regs, nil
}
