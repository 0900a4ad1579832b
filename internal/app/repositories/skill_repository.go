package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/dberrors"
)

// SkillRepository handles database operations for the skill catalog
type SkillRepository struct {
	db *pgxpool.Pool
}

// NewSkillRepository creates a new SkillRepository
func NewSkillRepository(db *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{db: db}
}

// GetAll retrieves the catalog, optionally filtered by category, ordered by name.
func (r *SkillRepository) GetAll(ctx context.Context, category *string) ([]models.Skill, error) {
	query := squirrel.Select("id", "name", "category").
		From("skills").
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)

	if category != nil && *category != "" {
		query = query.Where("category = ?", *category)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var skills []models.Skill
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Category); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		skills = append(skills, skill)
	}

	return skills, rows.Err()
}

// GetByID retrieves one catalog entry.
func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.QueryRow(ctx,
		`SELECT id, name, category FROM skills WHERE id = $1`, id).
		Scan(&skill.ID, &skill.Name, &skill.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSkillNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &skill, nil
}

// Create inserts a catalog entry. Names are unique.
func (r *SkillRepository) Create(ctx context.Context, skill *models.Skill) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO skills (name, category) VALUES ($1, $2) RETURNING id`,
		skill.Name, skill.Category).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrSkillExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return id, nil
}
