package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// TeamRepository handles database operations for teams and memberships.
// Admission (capacity check + membership insert + request/invitation status
// flip) runs inside a single transaction with the team row locked, so two
// concurrent approvals cannot overbook the last slot.
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts a team and its creator's leader membership in one transaction.
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) (int64, error) {
	var teamID int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO teams (event_id, creator_id, name, description, requirements, max_members, is_public)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, team.EventID, team.CreatorID, team.Name, team.Description,
			team.Requirements, team.MaxMembers, team.IsPublic).Scan(&teamID)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("error inserting team: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO team_memberships (team_id, user_id, role)
			VALUES ($1, $2, $3)
		`, teamID, team.CreatorID, models.RoleLeader)
		if err != nil {
			return fmt.Errorf("error inserting leader membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return teamID, nil
}

// GetByID retrieves a team with member count and required skills.
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	query := `
		SELECT t.id, t.event_id, t.creator_id, t.name, t.description,
			t.requirements, t.max_members, t.is_public, t.created_at, t.updated_at,
			(SELECT COUNT(*) FROM team_memberships m
				WHERE m.team_id = t.id AND m.is_active) AS member_count
		FROM teams t
		WHERE t.id = $1
	`

	var team models.Team
	err := r.db.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.EventID,
		&team.CreatorID,
		&team.Name,
		&team.Description,
		&team.Requirements,
		&team.MaxMembers,
		&team.IsPublic,
		&team.CreatedAt,
		&team.UpdatedAt,
		&team.MemberCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	skills, err := r.getRequiredSkills(ctx, id)
	if err != nil {
		return nil, err
	}
	team.RequiredSkills = skills

	return &team, nil
}

func (r *TeamRepository) getRequiredSkills(ctx context.Context, teamID int64) ([]models.Skill, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.name, s.category
		FROM skills s
		JOIN team_skills ts ON ts.skill_id = s.id
		WHERE ts.team_id = $1
		ORDER BY s.name
	`, teamID)
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

// GetAll retrieves teams visible to the viewer: public teams plus teams the
// viewer is a member of, with optional event filter and pagination.
func (r *TeamRepository) GetAll(ctx context.Context, filter *dto.TeamFilterRequest, viewerID int64) ([]models.Team, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	query := squirrel.Select(
		"t.id", "t.event_id", "t.creator_id", "t.name", "t.description",
		"t.requirements", "t.max_members", "t.is_public", "t.created_at", "t.updated_at",
		"(SELECT COUNT(*) FROM team_memberships m WHERE m.team_id = t.id AND m.is_active) AS member_count",
		"COUNT(*) OVER() AS total_count",
	).
		From("teams t").
		Where(squirrel.Or{
			squirrel.Expr("t.is_public"),
			squirrel.Expr(
				"EXISTS (SELECT 1 FROM team_memberships m WHERE m.team_id = t.id AND m.user_id = ? AND m.is_active)",
				viewerID),
		}).
		OrderBy("t.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar)

	if filter.EventID != nil {
		query = query.Where("t.event_id = ?", *filter.EventID)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("(t.name ILIKE ? OR t.description ILIKE ?)", pattern, pattern)
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

	var teams []models.Team
	var total int64
	for rows.Next() {
		var team models.Team
		err := rows.Scan(
			&team.ID,
			&team.EventID,
			&team.CreatorID,
			&team.Name,
			&team.Description,
			&team.Requirements,
			&team.MaxMembers,
			&team.IsPublic,
			&team.CreatedAt,
			&team.UpdatedAt,
			&team.MemberCount,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, total, rows.Err()
}

// Update applies the non-nil fields of the request to a team.
func (r *TeamRepository) Update(ctx context.Context, id int64, req *dto.UpdateTeamRequest) error {
	update := squirrel.Update("teams").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	if req.Name != nil {
		update = update.Set("name", *req.Name)
	}
	if req.Description != nil {
		update = update.Set("description", *req.Description)
	}
	if req.Requirements != nil {
		update = update.Set("requirements", *req.Requirements)
	}
	if req.MaxMembers != nil {
		update = update.Set("max_members", *req.MaxMembers)
	}
	if req.IsPublic != nil {
		update = update.Set("is_public", *req.IsPublic)
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
		return apperrors.ErrTeamNotFound
	}

	return nil
}

// Delete removes a team; memberships, requests and invitations cascade.
func (r *TeamRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTeamNotFound
	}
	return nil
}

// SetRequiredSkills replaces a team's required skill set.
func (r *TeamRepository) SetRequiredSkills(ctx context.Context, teamID int64, skillIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM team_skills WHERE team_id = $1`, teamID); err != nil {
			return fmt.Errorf("error clearing team skills: %w", err)
		}
		for _, skillID := range skillIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO team_skills (team_id, skill_id) VALUES ($1, $2)`,
				teamID, skillID)
			if err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrSkillNotFound
				}
				return fmt.Errorf("error inserting team skill: %w", err)
			}
		}
		return nil
	})
}

// IsActiveMember reports whether the user holds an active membership.
func (r *TeamRepository) IsActiveMember(ctx context.Context, teamID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM team_memberships
			WHERE team_id = $1 AND user_id = $2 AND is_active
		)
	`, teamID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return exists, nil
}

// GetMembers retrieves active memberships with user data, newest first.
func (r *TeamRepository) GetMembers(ctx context.Context, teamID int64) ([]*models.TeamMembership, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.team_id, m.user_id, m.role, m.is_active, m.joined_at,
			u.id, u.email, u.first_name, u.last_name
		FROM team_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1 AND m.is_active
		ORDER BY m.joined_at DESC
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var members []*models.TeamMembership
	for rows.Next() {
		var m models.TeamMembership
		var u models.User
		err := rows.Scan(
			&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.IsActive, &m.JoinedAt,
			&u.ID, &u.Email, &u.FirstName, &u.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		m.User = &u
		members = append(members, &m)
	}

	return members, rows.Err()
}

// CountActiveMembers counts active memberships for a team.
func (r *TeamRepository) CountActiveMembers(ctx context.Context, teamID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM team_memberships WHERE team_id = $1 AND is_active
	`, teamID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// CountActiveLeaders counts active leader memberships for a team.
func (r *TeamRepository) CountActiveLeaders(ctx context.Context, teamID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM team_memberships
		WHERE team_id = $1 AND role = $2 AND is_active
	`, teamID, models.RoleLeader).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// RemoveMember deletes the user's membership row. Returns ErrNotAMember when
// no membership exists.
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM team_memberships WHERE team_id = $1 AND user_id = $2
	`, teamID, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotAMember
	}
	return nil
}

// lockTeamAndCheckCapacity locks the team row and reports whether a slot is
// free. Must run inside a transaction.
func lockTeamAndCheckCapacity(ctx context.Context, tx pgx.Tx, teamID int64) (bool, error) {
	var maxMembers int
	err := tx.QueryRow(ctx,
		`SELECT max_members FROM teams WHERE id = $1 FOR UPDATE`, teamID).Scan(&maxMembers)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrTeamNotFound
		}
		return false, fmt.Errorf("error locking team row: %w", err)
	}

	var memberCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM team_memberships WHERE team_id = $1 AND is_active`, teamID).
		Scan(&memberCount)
	if err != nil {
		return false, fmt.Errorf("error counting members: %w", err)
	}

	return memberCount < maxMembers, nil
}

// AdmitJoinRequest atomically admits the requesting user: if a slot is free it
// inserts the membership and marks the request approved with processed_at set.
// Returns false without modifying anything when the team is full, leaving the
// request pending.
func (r *TeamRepository) AdmitJoinRequest(ctx context.Context, requestID, teamID, userID int64) (bool, error) {
	admitted := false
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		hasSlot, err := lockTeamAndCheckCapacity(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if !hasSlot {
			return nil
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO team_memberships (team_id, user_id, role)
			VALUES ($1, $2, $3)
		`, teamID, userID, models.RoleMember)
		if err != nil {
			return fmt.Errorf("error inserting membership: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE team_join_requests
			SET status = $1, processed_at = $2
			WHERE id = $3
		`, models.JoinRequestApproved, time.Now(), requestID)
		if err != nil {
			return fmt.Errorf("error updating join request: %w", err)
		}

		admitted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return admitted, nil
}

// AdmitInvitation atomically admits the invitee: if a slot is free it inserts
// the membership and marks the invitation accepted. Returns false without
// modifying anything when the team is full, leaving the invitation pending.
func (r *TeamRepository) AdmitInvitation(ctx context.Context, invitationID, teamID, userID int64) (bool, error) {
	admitted := false
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		hasSlot, err := lockTeamAndCheckCapacity(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if !hasSlot {
			return nil
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO team_memberships (team_id, user_id, role)
			VALUES ($1, $2, $3)
		`, teamID, userID, models.RoleMember)
		if err != nil {
			return fmt.Errorf("error inserting membership: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE team_invitations SET status = $1 WHERE id = $2
		`, models.InvitationAccepted, invitationID)
		if err != nil {
			return fmt.Errorf("error updating invitation: %w", err)
		}

		admitted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return admitted, nil
}
