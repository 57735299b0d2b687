package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selim/alumnihub/internal/app/models"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = "id, creator_id, title, description, starts_at, location, event_type, max_attendees, created_at"

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID,
		&event.CreatorID,
		&event.Title,
		&event.Description,
		&event.StartsAt,
		&event.Location,
		&event.EventType,
		&event.MaxAttendees,
		&event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &event, nil
}

// Create inserts a new event and returns its id
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := squirrel.Insert("events").
		Columns("creator_id", "title", "description", "starts_at", "location", "event_type", "max_attendees").
		Values(event.CreatorID, event.Title, event.Description, event.StartsAt, event.Location, event.EventType, event.MaxAttendees).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves an event by id, or nil when absent
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := squirrel.Select(eventColumns).
		From("events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanEvent(r.db.QueryRow(ctx, sql, args...))
}

// GetForUpdate retrieves an event inside the registration transaction with a
// row lock. Holding the lock while counting and writing makes the capacity
// check atomic: two registrations racing for the last slot serialize here.
func (r *EventRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.Event, error) {
	query := squirrel.Select(eventColumns).
		From("events").
		Where("id = ?", id).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanEvent(tx.QueryRow(ctx, sql, args...))
}

// List retrieves events with live registered counts, filtered by type and
// upcoming/past view, paginated.
func (r *EventRepository) List(ctx context.Context, eventType *string, upcoming bool, page, pageSize int) ([]*models.Event, map[int64]int, int64, error) {
	offset := (page - 1) * pageSize
	query := squirrel.Select().
		Columns(
			"e.id", "e.creator_id", "e.title", "e.description", "e.starts_at", "e.location", "e.event_type", "e.max_attendees", "e.created_at",
		).
		Column(squirrel.Expr("(SELECT COUNT(*) FROM event_registrations er WHERE er.event_id = e.id AND er.status = ?)", models.RegistrationRegistered)).
		Column("COUNT(*) OVER()").
		From("events e").
		PlaceholderFormat(squirrel.Dollar)

	if upcoming {
		query = query.Where("e.starts_at >= NOW()").OrderBy("e.starts_at ASC")
	} else {
		query = query.Where("e.starts_at < NOW()").OrderBy("e.starts_at DESC")
	}
	if eventType != nil && *eventType != "" {
		query = query.Where("e.event_type = ?", *eventType)
	}
	query = query.Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	counts := make(map[int64]int)
	var total int64
	for rows.Next() {
		var event models.Event
		var registered int
		err := rows.Scan(
			&event.ID,
			&event.CreatorID,
			&event.Title,
			&event.Description,
			&event.StartsAt,
			&event.Location,
			&event.EventType,
			&event.MaxAttendees,
			&event.CreatedAt,
			&registered,
			&total,
		)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		counts[event.ID] = registered
		events = append(events, &event)
	}

	return events, counts, total, nil
}
