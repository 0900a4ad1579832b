package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// NotificationRepository handles database operations for the notification log
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create appends a notification. A zero target stores NULLs.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) (int64, error) {
	var targetKind *models.TargetKind
	var targetID *int64
	if !notification.Target.IsZero() {
		targetKind = &notification.Target.Kind
		targetID = &notification.Target.ID
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, notification_type, title, message, target_kind, target_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, notification.UserID, notification.Type, notification.Title,
		notification.Message, targetKind, targetID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return id, nil
}

// GetByUser retrieves a page of the user's notifications, newest first,
// optionally restricted to unread ones.
func (r *NotificationRepository) GetByUser(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) ([]*models.Notification, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, notification_type, title, message,
			target_kind, target_id, is_read, created_at,
			COUNT(*) OVER() AS total_count
		FROM notifications
		WHERE user_id = $1 AND (NOT $2::bool OR NOT is_read)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	var total int64
	for rows.Next() {
		var notification models.Notification
		var targetKind *models.TargetKind
		var targetID *int64
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Type,
			&notification.Title,
			&notification.Message,
			&targetKind,
			&targetID,
			&notification.IsRead,
			&notification.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		if targetKind != nil && targetID != nil {
			notification.Target = models.NotificationTarget{Kind: *targetKind, ID: *targetID}
		}
		notifications = append(notifications, &notification)
	}

	return notifications, total, rows.Err()
}

// CountUnread counts the user's unread notifications.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification as read. Scoped to the owner so users
// cannot touch each other's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of the user's notifications as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read
	`, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}
