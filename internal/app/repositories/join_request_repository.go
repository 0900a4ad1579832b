package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/dberrors"
)

// JoinRequestRepository handles database operations for team join requests
type JoinRequestRepository struct {
	db *pgxpool.Pool
}

// NewJoinRequestRepository creates a new JoinRequestRepository
func NewJoinRequestRepository(db *pgxpool.Pool) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

// Create inserts a pending join request. A partial unique index on pending
// rows allows a user who left (or was rejected) to ask again later, while a
// second pending request for the same team maps to ErrDuplicateRequest.
func (r *JoinRequestRepository) Create(ctx context.Context, request *models.TeamJoinRequest) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO team_join_requests (team_id, user_id, message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, request.TeamID, request.UserID, request.Message, models.JoinRequestPending).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrDuplicateRequest
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrTeamNotFound
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return id, nil
}

// GetByID retrieves a join request with its team attached.
func (r *JoinRequestRepository) GetByID(ctx context.Context, id int64) (*models.TeamJoinRequest, error) {
	query := `
		SELECT r.id, r.team_id, r.user_id, r.message, r.status, r.created_at, r.processed_at,
			t.id, t.event_id, t.creator_id, t.name, t.max_members
		FROM team_join_requests r
		JOIN teams t ON t.id = r.team_id
		WHERE r.id = $1
	`

	var request models.TeamJoinRequest
	var team models.Team
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.TeamID,
		&request.UserID,
		&request.Message,
		&request.Status,
		&request.CreatedAt,
		&request.ProcessedAt,
		&team.ID,
		&team.EventID,
		&team.CreatorID,
		&team.Name,
		&team.MaxMembers,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJoinRequestNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	request.Team = &team

	return &request, nil
}

// GetByTeam retrieves a team's join requests with requester data, optionally
// filtered by status, newest first.
func (r *JoinRequestRepository) GetByTeam(ctx context.Context, teamID int64, status *models.JoinRequestStatus) ([]*models.TeamJoinRequest, error) {
	query := `
		SELECT r.id, r.team_id, r.user_id, r.message, r.status, r.created_at, r.processed_at,
			u.id, u.email, u.first_name, u.last_name
		FROM team_join_requests r
		JOIN users u ON u.id = r.user_id
		WHERE r.team_id = $1 AND ($2::text IS NULL OR r.status = $2)
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, teamID, status)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	return scanJoinRequests(rows)
}

// GetByUser retrieves the user's own join requests, newest first.
func (r *JoinRequestRepository) GetByUser(ctx context.Context, userID int64) ([]*models.TeamJoinRequest, error) {
	query := `
		SELECT r.id, r.team_id, r.user_id, r.message, r.status, r.created_at, r.processed_at,
			u.id, u.email, u.first_name, u.last_name
		FROM team_join_requests r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	return scanJoinRequests(rows)
}

func scanJoinRequests(rows pgx.Rows) ([]*models.TeamJoinRequest, error) {
	var requests []*models.TeamJoinRequest
	for rows.Next() {
		var request models.TeamJoinRequest
		var user models.User
		err := rows.Scan(
			&request.ID,
			&request.TeamID,
			&request.UserID,
			&request.Message,
			&request.Status,
			&request.CreatedAt,
			&request.ProcessedAt,
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		request.User = &user
		requests = append(requests, &request)
	}

	return requests, rows.Err()
}

// UpdateStatus moves a request to a terminal state and stamps processed_at.
// Approval normally happens through TeamRepository.AdmitJoinRequest; this is
// the rejection path.
func (r *JoinRequestRepository) UpdateStatus(ctx context.Context, id int64, status models.JoinRequestStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE team_join_requests SET status = $1, processed_at = $2 WHERE id = $3
	`, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrJoinRequestNotFound
	}
	return nil
}
