package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/db"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/dberrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// UserRepository handles database operations for users and profiles
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user together with an empty profile in one transaction.
// Registration must never produce a user without a profile.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	var userID int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, first_name, last_name)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, user.Email, user.PasswordHash, user.FirstName, user.LastName).Scan(&userID)
		if err != nil {
			return fmt.Errorf("error inserting user: %w", err)
		}

		_, err = tx.Exec(ctx, `INSERT INTO profiles (user_id) VALUES ($1)`, userID)
		if err != nil {
			return fmt.Errorf("error inserting profile: %w", err)
		}
		return nil
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, err
	}
	return userID, nil
}

// FindByID retrieves a user by ID without profile data.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

// FindByEmail retrieves a user by email without profile data.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, pred interface{}) (*models.User, error) {
	query := squirrel.Select(
		"id", "email", "password_hash", "first_name", "last_name",
		"is_active", "created_at", "updated_at",
	).
		From("users").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &user, nil
}

// GetWithProfile retrieves a user with profile and profile skills attached.
func (r *UserRepository) GetWithProfile(ctx context.Context, id int64) (*models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := r.getProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Profile = profile

	return user, nil
}

func (r *UserRepository) getProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT id, user_id, bio, university, organization, experience_level,
			interests, availability, status, linkedin_url, github_url,
			portfolio_url, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.University,
		&profile.Organization,
		&profile.ExperienceLevel,
		&profile.Interests,
		&profile.Availability,
		&profile.Status,
		&profile.LinkedinURL,
		&profile.GithubURL,
		&profile.PortfolioURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	skills, err := r.getProfileSkills(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	profile.Skills = skills

	return &profile, nil
}

func (r *UserRepository) getProfileSkills(ctx context.Context, profileID int64) ([]models.Skill, error) {
	query := `
		SELECT s.id, s.name, s.category
		FROM skills s
		JOIN profile_skills ps ON ps.skill_id = s.id
		WHERE ps.profile_id = $1
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, profileID)
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

// UpdateProfile applies the non-nil fields of the request to the user's profile.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) error {
	update := squirrel.Update("profiles").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	if req.Bio != nil {
		update = update.Set("bio", *req.Bio)
	}
	if req.University != nil {
		update = update.Set("university", *req.University)
	}
	if req.Organization != nil {
		update = update.Set("organization", *req.Organization)
	}
	if req.ExperienceLevel != nil {
		update = update.Set("experience_level", *req.ExperienceLevel)
	}
	if req.Interests != nil {
		update = update.Set("interests", *req.Interests)
	}
	if req.Availability != nil {
		update = update.Set("availability", *req.Availability)
	}
	if req.Status != nil {
		update = update.Set("status", *req.Status)
	}
	if req.LinkedinURL != nil {
		update = update.Set("linkedin_url", *req.LinkedinURL)
	}
	if req.GithubURL != nil {
		update = update.Set("github_url", *req.GithubURL)
	}
	if req.PortfolioURL != nil {
		update = update.Set("portfolio_url", *req.PortfolioURL)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetProfileSkills replaces the skill set attached to the user's profile.
func (r *UserRepository) SetProfileSkills(ctx context.Context, userID int64, skillIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var profileID int64
		err := tx.QueryRow(ctx, `SELECT id FROM profiles WHERE user_id = $1`, userID).Scan(&profileID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("error loading profile: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM profile_skills WHERE profile_id = $1`, profileID); err != nil {
			return fmt.Errorf("error clearing profile skills: %w", err)
		}

		for _, skillID := range skillIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO profile_skills (profile_id, skill_id) VALUES ($1, $2)`,
				profileID, skillID)
			if err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrSkillNotFound
				}
				return fmt.Errorf("error inserting profile skill: %w", err)
			}
		}
		return nil
	})
}

// GetAll retrieves users with profile filters and pagination.
func (r *UserRepository) GetAll(ctx context.Context, filter *dto.UserFilterRequest) ([]models.User, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	query := squirrel.Select(
		"u.id", "u.email", "u.password_hash", "u.first_name", "u.last_name",
		"u.is_active", "u.created_at", "u.updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("users u").
		Join("profiles p ON p.user_id = u.id").
		Where("u.is_active").
		OrderBy("u.id").
		Limit(uint64(limit)).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar)

	if filter.Availability != nil {
		query = query.Where("p.availability = ?", *filter.Availability)
	}
	if filter.Status != nil {
		query = query.Where("p.status = ?", *filter.Status)
	}
	if filter.SkillID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM profile_skills ps WHERE ps.profile_id = p.id AND ps.skill_id = ?)",
			*filter.SkillID)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where(
			"(u.first_name ILIKE ? OR u.last_name ILIKE ? OR u.email ILIKE ?)",
			pattern, pattern, pattern)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []models.User
	var total int64
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.FirstName,
			&user.LastName,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}
