package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/pkg/dberrors"
)

// SkillRepository handles database operations for skills
type SkillRepository struct {
	db *pgxpool.Pool
}

// NewSkillRepository creates a new SkillRepository
func NewSkillRepository(db *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{db: db}
}

// ListByUserID retrieves all skills for a user
func (r *SkillRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Skill, error) {
	query := squirrel.Select("id", "user_id", "name", "proficiency").
		From("skills").
		Where("user_id = ?", userID).
		OrderBy("name ASC").
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

	var skills []*models.Skill
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(&skill.ID, &skill.UserID, &skill.Name, &skill.Proficiency); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		skills = append(skills, &skill)
	}

	return skills, nil
}

// Create inserts a new skill for its owner
func (r *SkillRepository) Create(ctx context.Context, skill *models.Skill) (int64, error) {
	query := squirrel.Insert("skills").
		Columns("user_id", "name", "proficiency").
		Values(skill.UserID, skill.Name, skill.Proficiency).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, err
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// Delete removes a skill, guarded by the owning user id
func (r *SkillRepository) Delete(ctx context.Context, skillID, userID int64) (bool, error) {
	query := squirrel.Delete("skills").
		Where("id = ? AND user_id = ?", skillID, userID).
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
