package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selim/alumnihub/internal/app/models"
)

// JobRepository handles database operations for job postings
type JobRepository struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = "id, poster_id, title, company, location, job_type, description, requirements, salary_range, application_deadline, status, posted_at"

func scanJob(row pgx.Row) (*models.JobPosting, error) {
	var job models.JobPosting
	err := row.Scan(
		&job.ID,
		&job.PosterID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.JobType,
		&job.Description,
		&job.Requirements,
		&job.SalaryRange,
		&job.ApplicationDeadline,
		&job.Status,
		&job.PostedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &job, nil
}

// Create inserts a new job posting and returns its id
func (r *JobRepository) Create(ctx context.Context, job *models.JobPosting) (int64, error) {
	query := squirrel.Insert("job_postings").
		Columns("poster_id", "title", "company", "location", "job_type", "description", "requirements", "salary_range", "application_deadline", "status").
		Values(job.PosterID, job.Title, job.Company, job.Location, job.JobType, job.Description, job.Requirements, job.SalaryRange, job.ApplicationDeadline, job.Status).
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

// GetByID retrieves a job posting by id, or nil when absent
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	query := squirrel.Select(jobColumns).
		From("job_postings").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanJob(r.db.QueryRow(ctx, sql, args...))
}

// ListActive retrieves active postings with optional filters, paginated.
// Non-owners only ever see postings through this path.
func (r *JobRepository) ListActive(ctx context.Context, location, jobType, search *string, page, pageSize int) ([]*models.JobPosting, int64, error) {
	offset := (page - 1) * pageSize
	query := squirrel.Select(jobColumns + ", COUNT(*) OVER()").
		From("job_postings").
		Where("status = ?", models.JobActive).
		PlaceholderFormat(squirrel.Dollar)

	if location != nil && *location != "" {
		query = query.Where("location ILIKE ?", "%"+*location+"%")
	}
	if jobType != nil && *jobType != "" {
		query = query.Where("job_type = ?", *jobType)
	}
	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		query = query.Where("(title ILIKE ? OR company ILIKE ? OR description ILIKE ?)", pattern, pattern, pattern)
	}

	query = query.OrderBy("posted_at DESC").Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	return scanJobRows(rows)
}

// ListByPoster retrieves all postings owned by a user regardless of status
func (r *JobRepository) ListByPoster(ctx context.Context, posterID int64, page, pageSize int) ([]*models.JobPosting, int64, error) {
	offset := (page - 1) * pageSize
	query := squirrel.Select(jobColumns + ", COUNT(*) OVER()").
		From("job_postings").
		Where("poster_id = ?", posterID).
		OrderBy("posted_at DESC").
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

	return scanJobRows(rows)
}

func scanJobRows(rows pgx.Rows) ([]*models.JobPosting, int64, error) {
	var jobs []*models.JobPosting
	var total int64
	for rows.Next() {
		var job models.JobPosting
		err := rows.Scan(
			&job.ID,
			&job.PosterID,
			&job.Title,
			&job.Company,
			&job.Location,
			&job.JobType,
			&job.Description,
			&job.Requirements,
			&job.SalaryRange,
			&job.ApplicationDeadline,
			&job.Status,
			&job.PostedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, total, nil
}

// UpdateStatus transitions a posting between active and closed. The WHERE
// clause re-checks the stored poster id so only the owner can transition.
func (r *JobRepository) UpdateStatus(ctx context.Context, jobID, posterID int64, status models.JobStatus) (bool, error) {
	query := squirrel.Update("job_postings").
		Set("status", status).
		Where("id = ? AND poster_id = ?", jobID, posterID).
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
