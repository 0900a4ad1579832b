package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/dberrors"
)

// InvitationRepository handles database operations for team invitations
type InvitationRepository struct {
	db *pgxpool.Pool
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create inserts a pending invitation. (team, invitee) is unique regardless of
// status, so a team invites a given user at most once.
func (r *InvitationRepository) Create(ctx context.Context, invitation *models.TeamInvitation) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO team_invitations (team_id, inviter_id, invitee_id, message, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, invitation.TeamID, invitation.InviterID, invitation.InviteeID,
		invitation.Message, models.InvitationPending, invitation.ExpiresAt).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrDuplicateInvitation
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return id, nil
}

// GetByID retrieves an invitation with its team attached.
func (r *InvitationRepository) GetByID(ctx context.Context, id int64) (*models.TeamInvitation, error) {
	query := `
		SELECT i.id, i.team_id, i.inviter_id, i.invitee_id, i.message, i.status,
			i.created_at, i.expires_at,
			t.id, t.event_id, t.creator_id, t.name, t.max_members
		FROM team_invitations i
		JOIN teams t ON t.id = i.team_id
		WHERE i.id = $1
	`

	var invitation models.TeamInvitation
	var team models.Team
	err := r.db.QueryRow(ctx, query, id).Scan(
		&invitation.ID,
		&invitation.TeamID,
		&invitation.InviterID,
		&invitation.InviteeID,
		&invitation.Message,
		&invitation.Status,
		&invitation.CreatedAt,
		&invitation.ExpiresAt,
		&team.ID,
		&team.EventID,
		&team.CreatorID,
		&team.Name,
		&team.MaxMembers,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	invitation.Team = &team

	return &invitation, nil
}

// GetByTeam retrieves a team's invitations with invitee data, newest first.
func (r *InvitationRepository) GetByTeam(ctx context.Context, teamID int64) ([]*models.TeamInvitation, error) {
	query := `
		SELECT i.id, i.team_id, i.inviter_id, i.invitee_id, i.message, i.status,
			i.created_at, i.expires_at,
			u.id, u.email, u.first_name, u.last_name
		FROM team_invitations i
		JOIN users u ON u.id = i.invitee_id
		WHERE i.team_id = $1
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	return scanInvitations(rows, false)
}

// GetByInvitee retrieves the invitations addressed to a user, newest first,
// with inviter data attached.
func (r *InvitationRepository) GetByInvitee(ctx context.Context, inviteeID int64) ([]*models.TeamInvitation, error) {
	query := `
		SELECT i.id, i.team_id, i.inviter_id, i.invitee_id, i.message, i.status,
			i.created_at, i.expires_at,
			u.id, u.email, u.first_name, u.last_name
		FROM team_invitations i
		JOIN users u ON u.id = i.inviter_id
		WHERE i.invitee_id = $1
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, inviteeID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	return scanInvitations(rows, true)
}

func scanInvitations(rows pgx.Rows, joinedUserIsInviter bool) ([]*models.TeamInvitation, error) {
	var invitations []*models.TeamInvitation
	for rows.Next() {
		var invitation models.TeamInvitation
		var user models.User
		err := rows.Scan(
			&invitation.ID,
			&invitation.TeamID,
			&invitation.InviterID,
			&invitation.InviteeID,
			&invitation.Message,
			&invitation.Status,
			&invitation.CreatedAt,
			&invitation.ExpiresAt,
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if joinedUserIsInviter {
			invitation.Inviter = &user
		} else {
			invitation.Invitee = &user
		}
		invitations = append(invitations, &invitation)
	}

	return invitations, rows.Err()
}

// UpdateStatus moves an invitation to a terminal state. Acceptance normally
// happens through TeamRepository.AdmitInvitation; this is the decline and
// expire path.
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id int64, status models.InvitationStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE team_invitations SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrInvitationNotFound
	}
	return nil
}
