package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selim/alumnihub/internal/app/models"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification inside the caller's transaction so it
// commits or rolls back together with the triggering write.
func (r *NotificationRepository) Create(ctx context.Context, tx pgx.Tx, userID int64, message, notificationType string) (int64, error) {
	query := squirrel.Insert("notifications").
		Columns("user_id", "message", "notification_type").
		Values(userID, message, notificationType).
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

// ListByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Notification, error) {
	query := squirrel.Select("id", "user_id", "message", "notification_type", "is_read", "created_at").
		From("notifications").
		Where("user_id = ?", userID).
		OrderBy("created_at DESC").
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

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}

// MarkRead marks a notification read, guarded by the owning user id
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID int64) (bool, error) {
	query := squirrel.Update("notifications").
		Set("is_read", true).
		Where("id = ? AND user_id = ?", notificationID, userID).
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
